package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/model"
)

// GetModuleConfig retrieves a user's stored configuration for a module.
func (s *SQLiteStorage) GetModuleConfig(ctx context.Context, userID, moduleName string) (*model.ModuleConfig, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(moduleName, "moduleName"); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, module_name, sheet_id, config, created_at, updated_at
		FROM module_configs
		WHERE user_id = ? AND module_name = ?
	`

	var (
		cfg     model.ModuleConfig
		sheetID sql.NullString
		blob    string
	)
	err := s.db.QueryRowContext(ctx, query, userID, moduleName).Scan(
		&cfg.UserID, &cfg.ModuleName, &sheetID, &blob, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module config: %w", err)
	}

	cfg.SheetID = sheetID.String
	// The blob is user data from several client generations; decode
	// leniently and fall back to an empty config rather than failing.
	if err := json.Unmarshal([]byte(blob), &cfg.Config); err != nil {
		cfg.Config = model.ComptaConfig{}
	}
	return &cfg, nil
}

// SaveModuleConfig creates or replaces a module config row.
func (s *SQLiteStorage) SaveModuleConfig(ctx context.Context, cfg *model.ModuleConfig) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validateString(cfg.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(cfg.ModuleName, "moduleName"); err != nil {
		return err
	}

	blob, err := json.Marshal(cfg.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	query := `
		INSERT INTO module_configs (user_id, module_name, sheet_id, config, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, module_name) DO UPDATE SET
			sheet_id = excluded.sheet_id,
			config = excluded.config,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query,
		cfg.UserID, cfg.ModuleName, cfg.SheetID, string(blob), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save module config: %w", err)
	}
	return nil
}

// MergeComptaConfig writes the serialized editor model into the stored
// compta blob, overwriting only the keys the editor owns (keywords,
// rules, export settings) and preserving everything else other clients
// may have written.
func (s *SQLiteStorage) MergeComptaConfig(ctx context.Context, userID string, cfg model.ComptaConfig) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// A missing row merges against an empty blob; first save creates it.
	blob := "{}"
	err = tx.QueryRowContext(ctx,
		"SELECT config FROM module_configs WHERE user_id = ? AND module_name = ?",
		userID, "compta").Scan(&blob)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read module config: %w", err)
	}

	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(blob), &merged); err != nil {
		merged = make(map[string]json.RawMessage)
	}

	if err := mergeKey(merged, "colonnes_a_remplir", cfg.Keywords); err != nil {
		return err
	}
	if err := mergeKey(merged, "regles_calcul", cfg.Rules); err != nil {
		return err
	}
	if cfg.ExportSettings != nil {
		if err := mergeKey(merged, "export_settings", cfg.ExportSettings); err != nil {
			return err
		}
	}
	if cfg.NotificationSettings != nil {
		if err := mergeKey(merged, "notification_settings", cfg.NotificationSettings); err != nil {
			return err
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to marshal merged config: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO module_configs (user_id, module_name, sheet_id, config, created_at, updated_at)
		VALUES (?, ?, '', ?, ?, ?)
		ON CONFLICT(user_id, module_name) DO UPDATE SET
			config = excluded.config,
			updated_at = excluded.updated_at`,
		userID, "compta", string(out), now, now); err != nil {
		return fmt.Errorf("failed to update module config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit module config: %w", err)
	}
	return nil
}

// DeleteModuleConfig removes a user's module configuration entirely.
func (s *SQLiteStorage) DeleteModuleConfig(ctx context.Context, userID, moduleName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(moduleName, "moduleName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM module_configs WHERE user_id = ? AND module_name = ?",
		userID, moduleName)
	if err != nil {
		return fmt.Errorf("failed to delete module config: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// RecordExportRun logs one manual or scheduled export for auditability.
func (s *SQLiteStorage) RecordExportRun(ctx context.Context, userID, moduleName, sheetName, format string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO export_runs (user_id, module_name, sheet_name, format) VALUES (?, ?, ?, ?)",
		userID, moduleName, sheetName, format); err != nil {
		return fmt.Errorf("failed to record export run: %w", err)
	}
	return nil
}

func mergeKey(dst map[string]json.RawMessage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	dst[key] = raw
	return nil
}
