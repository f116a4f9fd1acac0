package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your name and API key",
	Long: `Create a session for the chat service.

The API key is read without echo when stdin is a terminal. Values from
RESUMECHAT_USER_ID and RESUMECHAT_API_KEY (or a .env file) are used when
present. Logging in as a different user clears the stored resume.

Examples:
  resumechat login
  resumechat login --user "Ada Lovelace"
  echo "$KEY" | resumechat login --user ada`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session and resume",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

// loginUser is a flag for the login command.
var loginUser string

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "Name to log in as")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := inputReader(cmd)

	creds := domain.Credentials{UserID: loginUser, APIKey: loginDefaults.APIKey}
	if creds.UserID == "" {
		creds.UserID = loginDefaults.UserID
	}
	if creds.UserID == "" {
		cmd.Print("Name: ")
		creds.UserID = readLine(reader)
	}
	if creds.APIKey == "" {
		cmd.Print("API key: ")
		creds.APIKey = readSecret(cmd, reader)
	}

	session, err := sessionService.Login(cmd.Context(), creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s (session %s)\n", session.Credentials.UserID, session.ID)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out. Session data cleared.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Current(cmd.Context())
	if err != nil {
		return friendly(err)
	}

	cmd.Printf("User:    %s\n", session.Credentials.UserID)
	cmd.Printf("API key: %s\n", maskAPIKey(session.Credentials.APIKey))
	cmd.Printf("Session: %s\n", session.ID)
	if !session.CreatedAt.IsZero() {
		cmd.Printf("Since:   %s\n", session.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if storePath != "" {
		cmd.Printf("Store:   %s\n", storePath)
	} else {
		cmd.Println("Store:   memory (ephemeral)")
	}
	return nil
}
