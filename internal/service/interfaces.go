// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/iarmy/compta/internal/model"
)

// ConfigStore is the persistence contract for per-user module
// configuration blobs. The compta core treats it as an opaque
// key-value store with last-write-wins semantics.
type ConfigStore interface {
	// GetModuleConfig returns the stored config for a user and module,
	// or common.ErrNotFound.
	GetModuleConfig(ctx context.Context, userID, moduleName string) (*model.ModuleConfig, error)
	// SaveModuleConfig creates or replaces the stored config row.
	SaveModuleConfig(ctx context.Context, cfg *model.ModuleConfig) error
	// MergeComptaConfig merges the serialized model (keywords, rules,
	// export settings) into the existing blob, preserving keys the
	// editor does not own, and bumps the last-modified timestamp.
	MergeComptaConfig(ctx context.Context, userID string, cfg model.ComptaConfig) error
	// DeleteModuleConfig removes the stored config (the reset flow).
	DeleteModuleConfig(ctx context.Context, userID, moduleName string) error
}

// HeaderSource reads the header row of the user's spreadsheet.
type HeaderSource interface {
	ReadHeaders(ctx context.Context, sheetID string) (model.SheetHeaders, error)
}

// ExportRequest describes one document export.
type ExportRequest struct {
	SheetID   string
	SheetName string
	Title     string
}

// Exporter produces a binary document (PDF) for a sheet range.
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) ([]byte, error)
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
