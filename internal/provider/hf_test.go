package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hferrors "github.com/Member09/scaling-laws/internal/errors"
	"github.com/Member09/scaling-laws/internal/normalize"
)

// newRowsServer serves a fixed set of rows for dataset "good/corpus"
// through the /rows pagination protocol and counts requests.
func newRowsServer(t *testing.T, rows []map[string]any) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		require.Equal(t, "/rows", r.URL.Path)

		if r.URL.Query().Get("dataset") != "good/corpus" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"dataset not found"}`))
			return
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		length, _ := strconv.Atoi(r.URL.Query().Get("length"))
		end := offset + length
		if end > len(rows) {
			end = len(rows)
		}
		if offset > len(rows) {
			offset = len(rows)
		}

		page := map[string]any{
			"num_rows_total": len(rows),
			"partial":        false,
		}
		var pageRows []map[string]any
		for i := offset; i < end; i++ {
			pageRows = append(pageRows, map[string]any{"row_idx": i, "row": rows[i]})
		}
		page["rows"] = pageRows

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(page))
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func testRows(n int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"text": fmt.Sprintf("record %d", i)}
	}
	return rows
}

func drain(t *testing.T, ds Dataset) []normalize.Raw {
	t.Helper()

	var out []normalize.Raw
	for {
		raw, err := ds.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, raw)
	}
}

func TestLoadStreaming(t *testing.T) {
	srv, requests := newRowsServer(t, testRows(5))
	client := NewHFClientWith(srv.URL, 2)

	ds, err := client.Load(context.Background(), "good/corpus", Config{Name: "hi"}, true)
	require.NoError(t, err)

	_, known := ds.Len()
	assert.False(t, known, "streaming datasets must not report a length")

	// Load fetches exactly one page up front.
	assert.Equal(t, int64(1), requests.Load())

	got := drain(t, ds)
	require.Len(t, got, 5)
	assert.Equal(t, "record 0", got[0]["text"])
	assert.Equal(t, "record 4", got[4]["text"])

	// 5 rows at page size 2: offsets 0, 2, 4.
	assert.Equal(t, int64(3), requests.Load())

	// Exhausted datasets stay exhausted.
	_, err = ds.Next()
	assert.Equal(t, io.EOF, err)
}

func TestLoadStreamingIsLazy(t *testing.T) {
	srv, requests := newRowsServer(t, testRows(6))
	client := NewHFClientWith(srv.URL, 2)

	ds, err := client.Load(context.Background(), "good/corpus", Config{}, true)
	require.NoError(t, err)

	// Consuming only the first page triggers no further fetches.
	for i := 0; i < 2; i++ {
		_, err := ds.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), requests.Load())

	// The third record needs the second page.
	_, err = ds.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(2), requests.Load())
}

func TestLoadMaterialized(t *testing.T) {
	srv, requests := newRowsServer(t, testRows(5))
	client := NewHFClientWith(srv.URL, 2)

	ds, err := client.Load(context.Background(), "good/corpus", Config{Name: "hi"}, false)
	require.NoError(t, err)

	n, known := ds.Len()
	assert.True(t, known)
	assert.Equal(t, 5, n)

	// All pages fetched up front.
	assert.Equal(t, int64(3), requests.Load())

	got := drain(t, ds)
	assert.Len(t, got, 5)
}

func TestLoadEmptyDataset(t *testing.T) {
	srv, _ := newRowsServer(t, nil)
	client := NewHFClientWith(srv.URL, 2)

	ds, err := client.Load(context.Background(), "good/corpus", Config{}, true)
	require.NoError(t, err)
	assert.Empty(t, drain(t, ds))

	ds, err = client.Load(context.Background(), "good/corpus", Config{}, false)
	require.NoError(t, err)
	n, known := ds.Len()
	assert.True(t, known)
	assert.Equal(t, 0, n)
}

func TestLoadUnknownDataset(t *testing.T) {
	srv, _ := newRowsServer(t, testRows(1))
	client := NewHFClientWith(srv.URL, 2)

	_, err := client.Load(context.Background(), "missing/corpus", Config{Name: "hi"}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "missing/corpus")
}

func TestLoadRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewHFClientWith(srv.URL, 2)
	_, err := client.Load(context.Background(), "good/corpus", Config{}, true)
	require.Error(t, err)
	assert.True(t, hferrors.IsRateLimitError(err))
}

func TestLoadDefaultsSplit(t *testing.T) {
	var gotSplit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSplit = r.URL.Query().Get("split")
		_, _ = w.Write([]byte(`{"rows":[],"num_rows_total":0,"partial":false}`))
	}))
	t.Cleanup(srv.Close)

	client := NewHFClientWith(srv.URL, 2)
	_, err := client.Load(context.Background(), "good/corpus", Config{}, true)
	require.NoError(t, err)
	assert.Equal(t, "train", gotSplit)
}
