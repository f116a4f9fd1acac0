package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "http://localhost:8000/")
	_ = store.Set("api.rate_limit", 0.5)
	_ = store.Set("chat.request_timeout", 15)
	_ = store.Set("storage.backend", "memory")
	_ = store.Set("preview.port", 9000)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", settings.API.BaseURL)
	assert.Equal(t, 0.5, settings.API.RateLimit)
	assert.Equal(t, 15*time.Second, settings.Chat.RequestTimeout)
	assert.Equal(t, domain.StorageMemory, settings.Storage.Backend)
	assert.Equal(t, 9000, settings.Preview.Port)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.backend", "redis")
	_ = store.Set("api.rate_limit", -1)
	_ = store.Set("preview.port", -5)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Storage.Backend, settings.Storage.Backend)
	assert.Equal(t, defaults.API.RateLimit, settings.API.RateLimit)
	assert.Equal(t, defaults.Preview.Port, settings.Preview.Port)
}

func TestSettingsService_ZeroTimeoutDisables(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chat.request_timeout", 0)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Zero(t, settings.Chat.RequestTimeout)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"api.base_url", "https://example.test/", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "https://example.test", s.API.BaseURL)
		}},
		{"api.rate_limit", "0", func(t *testing.T, s *domain.AppSettings) {
			assert.Zero(t, s.API.RateLimit)
		}},
		{"chat.request_timeout", "90", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 90*time.Second, s.Chat.RequestTimeout)
		}},
		{"storage.backend", "MEMORY", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.StorageMemory, s.Storage.Backend)
		}},
		{"preview.port", "8080", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 8080, s.Preview.Port)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_SetRejectsInvalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{"api.base_url", "ftp://x"},
		{"api.rate_limit", "fast"},
		{"chat.request_timeout", "-1"},
		{"storage.backend", "redis"},
		{"preview.port", "70000"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Contains(t, service.Keys(), "api.base_url")
	assert.Len(t, service.Keys(), 5)
}
