package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/config/env"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change values in ~/.resumechat/config.toml.

Keys:
  api.base_url          Chat service base URL
  api.rate_limit        Requests per second to the chat service (0 = unlimited)
  chat.request_timeout  Seconds to wait for one reply (0 = no limit)
  storage.backend       sqlite or memory
  preview.port          Port for 'resumechat preview'

RESUMECHAT_BASE_URL in the environment or a .env file overrides api.base_url.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	if o := env.Read(); o.BaseURL != "" {
		cmd.Printf("            (overridden by %s=%s)\n", env.VarBaseURL, o.BaseURL)
	}
	if settings.API.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g req/s\n", settings.API.RateLimit)
	} else {
		cmd.Println("  Rate limit: unlimited")
	}
	cmd.Println()

	cmd.Println("[Chat]")
	if settings.Chat.RequestTimeout > 0 {
		cmd.Printf("  Request timeout: %s\n", settings.Chat.RequestTimeout)
	} else {
		cmd.Println("  Request timeout: none")
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if storePath != "" {
		cmd.Printf("  Path: %s\n", storePath)
	}
	cmd.Println()

	cmd.Println("[Preview]")
	cmd.Printf("  Port: %d\n", settings.Preview.Port)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			cmd.Printf("Valid keys: %v\n", settingsService.Keys())
		}
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
