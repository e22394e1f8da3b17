package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/compta"
	"github.com/iarmy/compta/internal/config"
	"github.com/iarmy/compta/internal/model"
	"github.com/iarmy/compta/internal/storage"
)

const moduleName = "compta"

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/compta/compta.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// requireUserID resolves the user owning the configuration.
func requireUserID() (string, error) {
	userID := viper.GetString("user.id")
	if userID == "" {
		return "", fmt.Errorf("no user configured (set user.id or pass --user)")
	}
	return userID, nil
}

// loadSession loads the user's stored compta configuration and opens an
// editing session over it. A missing row starts an empty session.
func loadSession(ctx context.Context, store *storage.SQLiteStorage, userID string) (*compta.Session, *model.ModuleConfig, error) {
	mc, err := store.GetModuleConfig(ctx, userID, moduleName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			mc = &model.ModuleConfig{UserID: userID, ModuleName: moduleName}
		} else {
			return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	cfg := mc.Config
	session := compta.NewSession(&cfg, cfg.Headers(), cfg.ProtectedColumns)
	return session, mc, nil
}

// openSession resolves the user, opens storage, and loads the user's
// editing session. The caller owns closing the returned store.
func openSession(ctx context.Context) (*compta.Session, string, *storage.SQLiteStorage, error) {
	userID, err := requireUserID()
	if err != nil {
		return nil, "", nil, err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, "", nil, err
	}

	session, _, err := loadSession(ctx, store, userID)
	if err != nil {
		_ = store.Close()
		return nil, "", nil, err
	}
	return session, userID, store, nil
}

// persistSession serializes the session and merges it into the stored
// config blob. CLI commands call this once per invocation; the TUI
// goes through the debounced saver instead.
func persistSession(ctx context.Context, store *storage.SQLiteStorage, userID string, session *compta.Session) error {
	if err := store.MergeComptaConfig(ctx, userID, session.Serialize()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
