package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// Streaming controls whether sources are paged lazily instead of
	// materialized up front
	Streaming bool
	// RecordLimit caps how many records each output receives, 0 for all
	RecordLimit int
	// HFToken is the optional Hugging Face API token for gated datasets
	HFToken string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("RawOutputDir", "./data/raw/")
	viper.SetDefault("Streaming", true)
	viper.SetDefault("RecordLimit", 0)
	viper.SetDefault("hf.endpoint", "https://datasets-server.huggingface.co")
	viper.SetDefault("hf.pagesize", 100)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./corpora_cache.db")
	viper.SetDefault("cache.ttl", "720h")
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./corpora.db")
	viper.SetDefault("datasette.remote", "")
	viper.SetDefault("datasette.token", "")
	viper.SetDefault("wikipedia.snapshot", "20231101.hi")

	// Get values from viper
	Streaming = viper.GetBool("Streaming")
	RecordLimit = viper.GetInt("RecordLimit")
	HFToken = viper.GetString("HFToken")
}

// SetStreaming sets the Streaming flag
func SetStreaming(streaming bool) {
	Streaming = streaming
}

// SetRecordLimit sets the per-output record cap
func SetRecordLimit(limit int) {
	RecordLimit = limit
}
