package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/Member09/scaling-laws/internal/cache"
	hferrors "github.com/Member09/scaling-laws/internal/errors"
	"github.com/Member09/scaling-laws/internal/normalize"
	"github.com/Member09/scaling-laws/internal/ratelimit"
)

const (
	// DefaultEndpoint is the public datasets-server API.
	DefaultEndpoint = "https://datasets-server.huggingface.co"
	// DefaultPageSize is the /rows page length; 100 is the API maximum.
	DefaultPageSize = 100
	// defaultSplit is used when a candidate does not name a split.
	defaultSplit = "train"
)

// HFClient implements Provider over the datasets-server REST API.
// Row pages are rate limited and cached in the local SQLite cache.
type HFClient struct {
	endpoint string
	pageSize int
	client   *http.Client
	limiter  *ratelimit.Limiter
	useCache bool
}

// NewHFClient creates a client configured from viper (hf.endpoint,
// hf.pagesize) with page caching enabled.
func NewHFClient() *HFClient {
	endpoint := viper.GetString("hf.endpoint")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	pageSize := viper.GetInt("hf.pagesize")
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &HFClient{
		endpoint: endpoint,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 60 * time.Second},
		limiter:  ratelimit.New("datasets-server", 8),
		useCache: true,
	}
}

// NewHFClientWith creates a client with explicit endpoint and page size
// and no page cache. Used by tests and custom deployments.
func NewHFClientWith(endpoint string, pageSize int) *HFClient {
	return &HFClient{
		endpoint: endpoint,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 60 * time.Second},
		limiter:  ratelimit.New("datasets-server", 100),
		useCache: false,
	}
}

// rowsResponse is the /rows API payload, trimmed to the fields we use.
type rowsResponse struct {
	Rows []struct {
		RowIdx int            `json:"row_idx"`
		Row    map[string]any `json:"row"`
	} `json:"rows"`
	NumRowsTotal int  `json:"num_rows_total"`
	Partial      bool `json:"partial"`
}

// Load fetches the first page to validate the identifier, then returns
// either a lazily paging dataset (streaming) or a fully materialized one.
func (c *HFClient) Load(ctx context.Context, dataset string, cfg Config, streaming bool) (Dataset, error) {
	if cfg.Split == "" {
		cfg.Split = defaultSplit
	}

	first, err := c.fetchPage(ctx, dataset, cfg, 0)
	if err != nil {
		return nil, err
	}

	if streaming {
		return &streamingDataset{
			ctx:     ctx,
			client:  c,
			dataset: dataset,
			cfg:     cfg,
			page:    first,
		}, nil
	}

	rows := make([]normalize.Raw, 0, first.NumRowsTotal)
	for _, r := range first.Rows {
		rows = append(rows, normalize.Raw(r.Row))
	}
	for len(rows) < first.NumRowsTotal {
		page, err := c.fetchPage(ctx, dataset, cfg, len(rows))
		if err != nil {
			return nil, err
		}
		if len(page.Rows) == 0 {
			break
		}
		for _, r := range page.Rows {
			rows = append(rows, normalize.Raw(r.Row))
		}
	}
	return &materializedDataset{rows: rows}, nil
}

func (c *HFClient) fetchPage(ctx context.Context, dataset string, cfg Config, offset int) (*rowsResponse, error) {
	if !c.useCache {
		return c.fetchPageDirect(ctx, dataset, cfg, offset)
	}

	key := fmt.Sprintf("%s|%s|%s|%d|%d", dataset, cfg.Name, cfg.Split, offset, c.pageSize)
	page, _, err := cache.GetOrFetch("rows_cache", key, func() (*rowsResponse, error) {
		return c.fetchPageDirect(ctx, dataset, cfg, offset)
	})
	return page, err
}

func (c *HFClient) fetchPageDirect(ctx context.Context, dataset string, cfg Config, offset int) (*rowsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("dataset", dataset)
	if cfg.Name != "" {
		params.Set("config", cfg.Name)
	}
	params.Set("split", cfg.Split)
	params.Set("offset", fmt.Sprintf("%d", offset))
	params.Set("length", fmt.Sprintf("%d", c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/rows?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows for %s: %w", dataset, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, hferrors.NewRateLimitError(
			fmt.Sprintf("datasets-server rate limited request for %s", dataset))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datasets-server returned status %d for %s/%s: %s",
			resp.StatusCode, dataset, cfg.Name, truncateBody(body))
	}

	var page rowsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse rows response for %s: %w", dataset, err)
	}
	return &page, nil
}

// truncateBody keeps error messages readable when the API returns a long
// HTML or JSON error page.
func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

// streamingDataset pages through /rows lazily. ctx comes from Load and
// governs all subsequent page fetches.
type streamingDataset struct {
	ctx     context.Context
	client  *HFClient
	dataset string
	cfg     Config
	page    *rowsResponse
	pos     int
	offset  int
	done    bool
}

func (d *streamingDataset) Next() (normalize.Raw, error) {
	for {
		if d.done {
			return nil, io.EOF
		}
		if d.pos < len(d.page.Rows) {
			row := d.page.Rows[d.pos].Row
			d.pos++
			return normalize.Raw(row), nil
		}

		nextOffset := d.offset + len(d.page.Rows)
		if len(d.page.Rows) == 0 || (nextOffset >= d.page.NumRowsTotal && !d.page.Partial) {
			d.done = true
			return nil, io.EOF
		}

		page, err := d.client.fetchPage(d.ctx, d.dataset, d.cfg, nextOffset)
		if err != nil {
			d.done = true
			return nil, err
		}
		d.page = page
		d.pos = 0
		d.offset = nextOffset
	}
}

// Len is unknown for streaming datasets.
func (d *streamingDataset) Len() (int, bool) {
	return 0, false
}

// materializedDataset holds all rows in memory; only used when the caller
// explicitly disabled streaming.
type materializedDataset struct {
	rows []normalize.Raw
	pos  int
}

func (d *materializedDataset) Next() (normalize.Raw, error) {
	if d.pos >= len(d.rows) {
		return nil, io.EOF
	}
	row := d.rows[d.pos]
	d.pos++
	return row, nil
}

func (d *materializedDataset) Len() (int, bool) {
	return len(d.rows), true
}
