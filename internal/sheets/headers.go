package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/iarmy/compta/internal/model"
)

// headerRange covers row 1 across every column a keyword can map to.
const headerRange = "A1:Z1"

// HeaderReader implements service.HeaderSource against the Sheets API.
type HeaderReader struct {
	service *sheets.Service
}

// NewHeaderReader creates a reader authenticated per the given config.
func NewHeaderReader(ctx context.Context, config Config) (*HeaderReader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, err
	}
	return &HeaderReader{service: srv}, nil
}

// ReadHeaders fetches row 1 of the spreadsheet and maps each non-empty
// cell to its column letter.
func (r *HeaderReader) ReadHeaders(ctx context.Context, sheetID string) (model.SheetHeaders, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("sheet ID is required")
	}

	resp, err := r.service.Spreadsheets.Values.Get(sheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read header row: %w", err)
	}

	headers := make(model.SheetHeaders)
	if len(resp.Values) == 0 {
		return headers, nil
	}

	for i, cell := range resp.Values[0] {
		if i >= len(model.Columns) {
			break
		}
		if name, ok := cell.(string); ok && name != "" {
			headers[model.Columns[i]] = name
		}
	}
	return headers, nil
}

// createSheetsService creates a Google Sheets API service from either a
// service account key or an OAuth2 refresh token.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsReadonlyScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}
