package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBaseURL        = "api.base_url"
	KeyRateLimit      = "api.rate_limit"
	KeyRequestTimeout = "chat.request_timeout"
	KeyStorageBackend = "storage.backend"
	KeyPreviewPort    = "preview.port"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   strings.TrimRight(s.getString(KeyBaseURL, defaults.API.BaseURL), "/"),
			RateLimit: s.getFloat(KeyRateLimit, defaults.API.RateLimit),
		},
		Chat: domain.ChatSettings{
			RequestTimeout: s.getSeconds(KeyRequestTimeout, defaults.Chat.RequestTimeout),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
		},
		Preview: domain.PreviewSettings{
			Port: s.getInt(KeyPreviewPort, defaults.Preview.Port),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save base_url: %w", err)
	}
	if err := s.configStore.Set(KeyRateLimit, settings.API.RateLimit); err != nil {
		return fmt.Errorf("save rate_limit: %w", err)
	}
	if err := s.configStore.Set(KeyRequestTimeout, int(settings.Chat.RequestTimeout/time.Second)); err != nil {
		return fmt.Errorf("save request_timeout: %w", err)
	}
	if err := s.configStore.Set(KeyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(KeyPreviewPort, settings.Preview.Port); err != nil {
		return fmt.Errorf("save preview port: %w", err)
	}

	return s.configStore.Save()
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyBaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, key)
		}
		settings.API.BaseURL = strings.TrimRight(value, "/")
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		settings.API.RateLimit = f
	case KeyRequestTimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be whole seconds, 0 to disable", domain.ErrInvalidInput, key)
		}
		settings.Chat.RequestTimeout = time.Duration(n) * time.Second
	case KeyStorageBackend:
		backend := domain.StorageBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%w: %s must be sqlite or memory", domain.ErrInvalidInput, key)
		}
		settings.Storage.Backend = backend
	case KeyPreviewPort:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("%w: %s must be a TCP port", domain.ErrInvalidInput, key)
		}
		settings.Preview.Port = n
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the recognised configuration keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyBaseURL, KeyRateLimit, KeyRequestTimeout, KeyStorageBackend, KeyPreviewPort}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

// getSeconds reads a whole-second duration. An explicit 0 is kept.
func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(KeyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
