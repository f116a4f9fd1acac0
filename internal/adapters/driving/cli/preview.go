package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a printable HTML version of the resume",
	Long: `Start a local web server with a print-ready resume page.

Open the printed URL in a browser and use its print dialog to save a PDF.
The page reads the session store on every request, so reload it after
adding sections.

Endpoints:
  /                               printable HTML
  /api/v1/resume                  resume as JSON
  /api/v1/resume/export/{format}  markdown, json or yaml`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("port", "p", 0, "HTTP port (default from preview.port)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if resumeService == nil {
		return errors.New("resume service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port <= 0 && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			port = settings.Preview.Port
		}
	}
	if port <= 0 {
		return errors.New("no port: pass --port or set preview.port")
	}

	server, err := preview.NewServer(resumeService)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("localhost:%d", port)
	cmd.Printf("Resume preview at http://%s (Ctrl+C to stop)\n", addr)
	return server.Run(cmd.Context(), addr)
}
