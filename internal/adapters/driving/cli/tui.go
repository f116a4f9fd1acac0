package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// runProgram runs the built app. Tests replace it to skip the terminal.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

var tuiLogFile string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

You log in once, then see your resume with one entry per section. Pick a
section to chat about it; the AI asks questions and the progress panel
shows which fields it has collected.

Controls:
  ↑/k, ↓/j   Choose a section
  a, enter   Add to the selected section
  e          Export the resume as Markdown
  L          Log out
  enter      Send a chat message
  ctrl+s     Submit the section
  esc        Back to the resume
  ctrl+c     Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write verbose logs to this file while the UI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI crashed: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(sessionService, resumeService, chatService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).
		WithExportDir(exportDir).
		WithLoginDefaults(loginDefaults)

	// Log lines on stderr would corrupt the alternate screen.
	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends verbose logs to path, or discards them when path is
// empty. The returned function restores stderr.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
