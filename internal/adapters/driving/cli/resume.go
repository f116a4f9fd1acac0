package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/logger"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "View, export and edit the assembled resume",
	RunE:  runResumeShow,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resume",
	Args:  cobra.NoArgs,
	RunE:  runResumeShow,
}

var resumeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as markdown, json or yaml",
	Long: `Write the resume to stdout or a file.

With --watch the export is rewritten every time the session store changes,
e.g. while a chat in another terminal adds sections.

Examples:
  resumechat resume export -f markdown -o resume.md
  resumechat resume export -f json
  resumechat resume export -f yaml -o resume.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runResumeExport,
}

var resumeContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Set the name and contact details in the resume header",
	Long: `Update the personal info shown at the top of the resume.
Only the flags given are changed.

Example:
  resumechat resume contact --name "Ada Lovelace" --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: runResumeContact,
}

// Flags for resume export.
var (
	exportFormat string
	exportOutput string
	exportWatch  bool
)

// Flags for resume contact.
var contactFlags = struct {
	name, email, phone, location, linkedin, github, website string
}{}

func init() {
	resumeExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Output format (markdown, json, yaml)")
	resumeExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	resumeExportCmd.Flags().BoolVarP(&exportWatch, "watch", "w", false, "Re-export when the resume changes")

	f := resumeContactCmd.Flags()
	f.StringVar(&contactFlags.name, "name", "", "Full name")
	f.StringVar(&contactFlags.email, "email", "", "Email address")
	f.StringVar(&contactFlags.phone, "phone", "", "Phone number")
	f.StringVar(&contactFlags.location, "location", "", "City or region")
	f.StringVar(&contactFlags.linkedin, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&contactFlags.github, "github", "", "GitHub profile URL")
	f.StringVar(&contactFlags.website, "website", "", "Personal website URL")

	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeExportCmd)
	resumeCmd.AddCommand(resumeContactCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeShow(cmd *cobra.Command, _ []string) error {
	if resumeService == nil {
		return errors.New("resume service not configured")
	}

	ctx := cmd.Context()
	doc, err := resumeService.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading resume: %w", err)
	}

	renderText(cmd.OutOrStdout(), doc, resumeService.DisplayName(ctx))
	return nil
}

func runResumeExport(cmd *cobra.Command, _ []string) error {
	if resumeService == nil {
		return errors.New("resume service not configured")
	}

	format, err := domain.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}
	if exportWatch && exportOutput == "" {
		return errors.New("--watch requires --output")
	}

	write := func(ctx context.Context) error {
		return exportTo(ctx, cmd, format, exportOutput)
	}

	if err := write(cmd.Context()); err != nil {
		return err
	}
	if exportOutput != "" {
		cmd.Printf("Wrote %s\n", exportOutput)
	}
	if !exportWatch {
		return nil
	}

	if storePath == "" {
		return errors.New("--watch needs the on-disk session store (drop --ephemeral)")
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", storePath)
	return watchStore(cmd.Context(), storePath, watchDebounce, func() error {
		if err := write(cmd.Context()); err != nil {
			logger.Warn("re-export failed: %v", err)
			return nil
		}
		cmd.Printf("[%s] Wrote %s\n", time.Now().Format("15:04:05"), exportOutput)
		return nil
	})
}

// exportTo renders into memory first so a failed export never truncates
// an existing file.
func exportTo(ctx context.Context, cmd *cobra.Command, format domain.ExportFormat, path string) error {
	var buf bytes.Buffer
	if err := resumeService.Export(ctx, &buf, format); err != nil {
		return friendly(err)
	}

	if path == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func runResumeContact(cmd *cobra.Command, _ []string) error {
	if resumeService == nil {
		return errors.New("resume service not configured")
	}

	ctx := cmd.Context()
	doc, err := resumeService.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading resume: %w", err)
	}

	info := doc.PersonalInfo
	changed := 0
	for _, u := range []struct {
		flag string
		dst  *string
		val  string
	}{
		{"name", &info.Name, contactFlags.name},
		{"email", &info.Email, contactFlags.email},
		{"phone", &info.Phone, contactFlags.phone},
		{"location", &info.Location, contactFlags.location},
		{"linkedin", &info.LinkedIn, contactFlags.linkedin},
		{"github", &info.GitHub, contactFlags.github},
		{"website", &info.Website, contactFlags.website},
	} {
		if cmd.Flags().Changed(u.flag) {
			*u.dst = strings.TrimSpace(u.val)
			changed++
		}
	}
	if changed == 0 {
		return errors.New("nothing to change: pass at least one of --name, --email, --phone, --location, --linkedin, --github, --website")
	}

	if err := resumeService.SetPersonalInfo(ctx, info); err != nil {
		return fmt.Errorf("saving contact details: %w", err)
	}
	cmd.Printf("Updated %d field(s) for %s.\n", changed, resumeService.DisplayName(ctx))
	return nil
}
