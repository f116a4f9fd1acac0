// Command resumechat builds a resume by chatting with a remote AI service.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/chatbot"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/config/env"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/export"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/cli"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/services"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if _, err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("finding config directory: %w", err)
		}
		configDir = dir
	}

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		// Run on defaults; 'config set' changes last until exit.
		logger.Warn("config file unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	overrides := env.Read()
	overrides.Apply(settings)

	kv, storePath, closeStore, err := openStore(configDir, settings.Storage.Backend, opts.Ephemeral)
	if err != nil {
		return nil, nil, err
	}
	sessions := services.NewSessionStore(kv)

	client := chatbot.NewClient(chatbot.Config{
		BaseURL:   settings.API.BaseURL,
		RateLimit: settings.API.RateLimit,
	})
	logger.Debug("chat service at %s", settings.API.BaseURL)

	loginDefaults := domain.Credentials{UserID: overrides.UserID, APIKey: overrides.APIKey}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &cli.Services{
		Session:       services.NewSessionService(sessions),
		Resume:        services.NewResumeService(sessions, export.All()...),
		Chat:          services.NewChatService(client, sessions, settings.Chat.RequestTimeout),
		Settings:      settingsService,
		LoginDefaults: loginDefaults,
		StorePath:     storePath,
		ExportDir:     cwd,
	}, closeStore, nil
}

// openStore returns the session key-value store. The memory store is used
// for --ephemeral and storage.backend = memory.
func openStore(configDir string, backend domain.StorageBackend, ephemeral bool) (driven.KeyValueStore, string, func(), error) {
	if ephemeral || backend == domain.StorageMemory {
		return memory.NewKVStore(), "", func() {}, nil
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening session store: %w", err)
	}
	return store, store.Path(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing session store: %v", err)
		}
	}, nil
}
