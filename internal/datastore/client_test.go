package datastore

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDatasetteClient_BatchInsert_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/-/insert/corpora/collection_runs") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer testtoken" {
			t.Errorf("unexpected auth header %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"rows"`) {
			t.Errorf("payload missing rows key: %s", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	records := []map[string]any{{"source": "wikipedia", "records_written": 500}}
	if err := client.BatchInsert(DatabaseName, RunsTable, records); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestDatasetteClient_BatchInsert_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		if err := json.NewEncoder(w).Encode(map[string]any{"error": "forbidden"}); err != nil {
			t.Errorf("Failed to encode error response: %v", err)
		}
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	records := []map[string]any{{"source": "wikipedia"}}
	if err := client.BatchInsert(DatabaseName, RunsTable, records); err == nil {
		t.Errorf("expected error, got nil")
	}
}
