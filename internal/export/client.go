// Package export downloads generated documents from the hosted export
// function. The function itself (rendering the sheet range to PDF) is an
// external collaborator; this client only owns the HTTP contract.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/service"
)

const exportPath = "/functions/v1/generate-pdf"

// Client implements service.Exporter over the export function endpoint.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	accessToken string
	retry       service.RetryOptions
}

// NewClient creates an export client. baseURL is the function host,
// apiKey the project key and accessToken the user's session token.
func NewClient(baseURL, apiKey, accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     baseURL,
		apiKey:      apiKey,
		accessToken: accessToken,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
		},
	}
}

type exportPayload struct {
	SheetID   string `json:"sheetId"`
	SheetName string `json:"sheetName"`
	Title     string `json:"title"`
}

type exportError struct {
	Error string `json:"error"`
}

// Export requests the document and returns its bytes. Server-side
// failures are retried; auth failures are not.
func (c *Client) Export(ctx context.Context, req service.ExportRequest) ([]byte, error) {
	if req.SheetID == "" {
		return nil, common.NewUserError("no sheet configured", common.ErrMissingConfig)
	}
	if c.accessToken == "" {
		return nil, common.NewUserError("session expired, sign in again", common.ErrSessionExpired)
	}

	body, err := json.Marshal(exportPayload{
		SheetID:   req.SheetID,
		SheetName: req.SheetName,
		Title:     req.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export request: %w", err)
	}

	var document []byte
	op := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+exportPath, bytes.NewReader(body))
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
		httpReq.Header.Set("apikey", c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return responseError(resp)
		}

		document, err = io.ReadAll(resp.Body)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}

	if err := common.WithRetry(ctx, op, c.retry); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExportFailed, err)
	}
	return document, nil
}

func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := "unable to generate document"
	var apiErr exportError
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
		message = apiErr.Error
	}

	err := fmt.Errorf("export endpoint returned %d: %s", resp.StatusCode, message)
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &common.RetryableError{
			Err:       common.NewUserError("session expired, sign in again", common.ErrSessionExpired),
			Retryable: false,
		}
	}
	return &common.RetryableError{Err: err, Retryable: resp.StatusCode >= 500}
}
