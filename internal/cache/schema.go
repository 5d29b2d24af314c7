package cache

// SQL schemas for cache tables. All cache tables use "cache_key" as the
// primary key column and an integer unix timestamp for expiry checks.

// RowsCacheSchema holds fetched dataset row pages, keyed by
// dataset/config/split/offset.
const RowsCacheSchema = `
CREATE TABLE IF NOT EXISTS rows_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rows_cached_at ON rows_cache(cached_at);
`

// AllCacheSchemas lists every cache table schema, applied on startup.
var AllCacheSchemas = []string{
	RowsCacheSchema,
}

// ValidCacheTableNames whitelists table names for dynamic SQL.
var ValidCacheTableNames = map[string]bool{
	"rows_cache": true,
}
