// Package env reads environment overrides, optionally from a .env file.
package env

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// Recognised variables.
const (
	VarBaseURL = "RESUMECHAT_BASE_URL"
	VarUserID  = "RESUMECHAT_USER_ID"
	VarAPIKey  = "RESUMECHAT_API_KEY"
)

// Overrides are values taken from the environment. Empty means unset.
type Overrides struct {
	BaseURL string
	UserID  string
	APIKey  string
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and returns the overrides. Missing files are ignored;
// variables already set in the environment win over file values.
func Load(files ...string) (Overrides, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Read(), err
		}
	}
	return Read(), nil
}

// Read returns the overrides currently in the environment.
func Read() Overrides {
	return Overrides{
		BaseURL: strings.TrimSpace(os.Getenv(VarBaseURL)),
		UserID:  strings.TrimSpace(os.Getenv(VarUserID)),
		APIKey:  strings.TrimSpace(os.Getenv(VarAPIKey)),
	}
}

// Apply writes the overrides onto settings. Overrides are never saved to
// the config file.
func (o Overrides) Apply(settings *domain.AppSettings) {
	if o.BaseURL != "" {
		settings.API.BaseURL = strings.TrimRight(o.BaseURL, "/")
	}
}

// Credentials returns the credentials from the environment, if both are set.
func (o Overrides) Credentials() (domain.Credentials, bool) {
	creds := domain.Credentials{UserID: o.UserID, APIKey: o.APIKey}
	if creds.Validate() != nil {
		return domain.Credentials{}, false
	}
	return creds, true
}
