// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/iarmy/compta/internal/export"
	"github.com/iarmy/compta/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets credentials with this precedence:
// 1. Viper configuration (from config file or COMPTA_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
func LoadSheetsConfig() (*sheets.Config, error) {
	var cfg sheets.Config

	// Load from Viper first
	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		cfg.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		cfg.RefreshToken = v
	}

	// Fall back to direct environment variables
	if cfg.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			cfg.ServiceAccountPath = ExpandPath(v)
		}
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadExportClient builds the PDF export client from Viper and
// environment variables. The access token comes from the environment
// only, so it never ends up in a config file.
func LoadExportClient() (*export.Client, error) {
	baseURL := viper.GetString("export.base_url")
	if baseURL == "" {
		baseURL = os.Getenv("COMPTA_EXPORT_BASE_URL")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("export service URL not configured (set export.base_url or COMPTA_EXPORT_BASE_URL)")
	}

	apiKey := viper.GetString("export.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("COMPTA_EXPORT_API_KEY")
	}

	accessToken := os.Getenv("COMPTA_ACCESS_TOKEN")

	return export.NewClient(baseURL, apiKey, accessToken), nil
}
