package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iarmy/compta/internal/common"
	"github.com/iarmy/compta/internal/service"
)

func TestClientExport(t *testing.T) {
	var gotPayload exportPayload
	var gotAuth, gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != exportPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "project-key", "token-123")
	doc, err := client.Export(context.Background(), service.ExportRequest{
		SheetID:   "sheet-abc",
		SheetName: "Janvier 2026",
		Title:     "Janvier 2026",
	})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	if string(doc) != "%PDF-1.4 fake" {
		t.Errorf("document = %q", doc)
	}
	if gotAuth != "Bearer token-123" || gotKey != "project-key" {
		t.Errorf("auth headers = %q / %q", gotAuth, gotKey)
	}
	if gotPayload.SheetID != "sheet-abc" || gotPayload.SheetName != "Janvier 2026" {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestClientExport_MissingPreconditions(t *testing.T) {
	t.Run("no sheet", func(t *testing.T) {
		client := NewClient("http://localhost", "key", "token")
		_, err := client.Export(context.Background(), service.ExportRequest{})
		if !errors.Is(err, common.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("no access token", func(t *testing.T) {
		client := NewClient("http://localhost", "key", "")
		_, err := client.Export(context.Background(), service.ExportRequest{SheetID: "sheet"})
		if !errors.Is(err, common.ErrSessionExpired) {
			t.Errorf("expected ErrSessionExpired, got %v", err)
		}
	})
}

func TestClientExport_AuthFailureNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"jwt expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "stale-token")
	_, err := client.Export(context.Background(), service.ExportRequest{SheetID: "sheet"})
	if !errors.Is(err, common.ErrExportFailed) {
		t.Fatalf("expected ErrExportFailed, got %v", err)
	}
	if calls != 1 {
		t.Errorf("auth failure retried %d times", calls)
	}
}

func TestClientExport_ClientErrorNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown sheet"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "token")
	_, err := client.Export(context.Background(), service.ExportRequest{SheetID: "sheet"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("4xx retried %d times", calls)
	}
}
