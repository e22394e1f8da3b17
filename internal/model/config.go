package model

import (
	"encoding/json"
	"time"
)

// SheetHeaders maps a column letter to the header found in row 1 of the
// user's spreadsheet. Read-only reference data.
type SheetHeaders map[string]string

// DetectedColumn is one entry of the stored header list.
type DetectedColumn struct {
	Column string `json:"colonne"`
	Name   string `json:"nom"`
}

// RawRule is a calculation rule as it appears in persisted config blobs.
// Three legacy encodings exist (terms, sources+operations, formula); any
// entry that fails to decode is kept as an empty RawRule so config loading
// never fails on bad data.
type RawRule struct {
	Terms      []Term   `json:"terms,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Operations []string `json:"operations,omitempty"`
	Formula    string   `json:"formula,omitempty"`
	Target     string   `json:"target,omitempty"`
}

// UnmarshalJSON decodes a rule leniently: malformed entries become the
// zero RawRule instead of aborting the whole config.
func (r *RawRule) UnmarshalJSON(data []byte) error {
	type plain RawRule
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*r = RawRule{}
		return nil
	}
	*r = RawRule(p)
	return nil
}

// ComptaConfig is the config blob stored per user for the compta module.
// Field names match the persisted JSON written by every client version.
type ComptaConfig struct {
	DetectedColumns      []DetectedColumn      `json:"colonnes_detectees,omitempty"`
	Keywords             []Keyword             `json:"colonnes_a_remplir"`
	Rules                []RawRule             `json:"regles_calcul"`
	ProtectedColumns     []string              `json:"colonnes_protegees,omitempty"`
	ExportSettings       *ExportSettings       `json:"export_settings,omitempty"`
	NotificationSettings *NotificationSettings `json:"notification_settings,omitempty"`
}

// Headers converts the stored detected-column list into a lookup map.
func (c *ComptaConfig) Headers() SheetHeaders {
	headers := make(SheetHeaders, len(c.DetectedColumns))
	for _, dc := range c.DetectedColumns {
		if dc.Column != "" && dc.Name != "" {
			headers[dc.Column] = dc.Name
		}
	}
	return headers
}

// ExportSettings controls the monthly accountant export.
type ExportSettings struct {
	AutoExportEnabled bool     `json:"auto_export_enabled,omitempty"`
	ExportEmail       string   `json:"export_email,omitempty"`
	AutoExportDay     string   `json:"auto_export_day,omitempty"`
	AutoExportFormat  string   `json:"auto_export_format,omitempty"`
	ExportColumns     []string `json:"export_columns,omitempty"`
}

// NotificationSettings controls Telegram recap notifications.
type NotificationSettings struct {
	WeeklyRecap      bool    `json:"weeklyRecap,omitempty"`
	MonthlyRecap     bool    `json:"monthlyRecap,omitempty"`
	Records          bool    `json:"records,omitempty"`
	Objective        bool    `json:"objective,omitempty"`
	MonthlyObjective float64 `json:"monthlyObjective,omitempty"`
}

// ModuleConfig is one row of the module_configs table: a user's stored
// configuration for a given module.
type ModuleConfig struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     string
	ModuleName string
	SheetID    string
	Config     ComptaConfig
}
