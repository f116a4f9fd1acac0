// Package cli provides the cobra command tree for resumechat.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services bundles the driving ports the commands use.
type Services struct {
	Session  driving.SessionService
	Resume   driving.ResumeService
	Chat     driving.ChatService
	Settings driving.SettingsService

	// LoginDefaults prefill login, e.g. from RESUMECHAT_USER_ID. Either
	// field may be empty.
	LoginDefaults domain.Credentials
	// StorePath is the session store file; empty for the memory store.
	StorePath string
	// ExportDir is where the TUI writes exports.
	ExportDir string
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Ephemeral bool
	Verbose   bool
}

// BootstrapFunc builds the services once flags are parsed. The returned
// cleanup runs after the command finishes.
type BootstrapFunc func(opts Options) (*Services, func(), error)

var (
	sessionService  driving.SessionService
	resumeService   driving.ResumeService
	chatService     driving.ChatService
	settingsService driving.SettingsService

	loginDefaults domain.Credentials
	storePath     string
	exportDir     string

	bootstrap BootstrapFunc
	cleanup   func()
)

// Global flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "resumechat",
	Short: "Build a resume by chatting with an AI, one section at a time",
	Long: `resumechat collects your experience, projects, education, skills and
achievements through a conversation with a remote AI service and assembles
them into a resume you can view, export, preview and print.

Start with 'resumechat login', then 'resumechat tui' or 'resumechat chat skills'.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests and state changes to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.resumechat)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep the session in memory only")
}

// SetServices injects services directly, bypassing bootstrap.
func SetServices(s *Services) {
	sessionService = s.Session
	resumeService = s.Resume
	chatService = s.Chat
	settingsService = s.Settings
	loginDefaults = s.LoginDefaults
	storePath = s.StorePath
	exportDir = s.ExportDir
}

// SetBootstrap registers the function that wires services from flags.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version printed by 'resumechat version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	s, done, err := bootstrap(Options{
		ConfigDir: flagConfigDir,
		Ephemeral: flagEphemeral,
		Verbose:   flagVerbose,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	cleanup = done
	return nil
}

// friendly rewrites errors the user can act on.
func friendly(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		return errors.New("not logged in: run 'resumechat login' first")
	case domain.IsTransport(err):
		return fmt.Errorf("could not reach the chat service: %w", err)
	default:
		return err
	}
}
