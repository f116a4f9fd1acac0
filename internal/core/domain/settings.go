package domain

import "time"

const unknownDescription = "Unknown"

// DefaultBaseURL is the hosted chat service.
const DefaultBaseURL = "https://resume-chatbot-backend-aq9a.onrender.com"

// StorageBackend selects where the session store lives.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps the session in a local database until logout.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps the session for the lifetime of the process.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (persists until logout)"
	case StorageMemory:
		return "Memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// APISettings holds remote chat service configuration.
type APISettings struct {
	// BaseURL is the service root, without the /api/v1 prefix.
	BaseURL string

	// RateLimit is the maximum requests per second sent to the service.
	// Zero or less disables throttling.
	RateLimit float64
}

// ChatSettings holds chat workflow configuration.
type ChatSettings struct {
	// RequestTimeout bounds each remote call. Zero disables the timeout.
	RequestTimeout time.Duration
}

// StorageSettings holds session store configuration.
type StorageSettings struct {
	// Backend selects the session store implementation.
	Backend StorageBackend
}

// PreviewSettings holds print preview server configuration.
type PreviewSettings struct {
	// Port is the local HTTP port.
	Port int
}

// AppSettings holds all application settings.
type AppSettings struct {
	API     APISettings
	Chat    ChatSettings
	Storage StorageSettings
	Preview PreviewSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultBaseURL,
			RateLimit: 2,
		},
		Chat: ChatSettings{
			RequestTimeout: 60 * time.Second,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Preview: PreviewSettings{
			Port: 8642,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageMemory}
}
