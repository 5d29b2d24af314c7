package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/Member09/scaling-laws/cmd/indicllm"
	"github.com/Member09/scaling-laws/cmd/samanantar"
	"github.com/Member09/scaling-laws/cmd/wikilingua"
	"github.com/Member09/scaling-laws/cmd/wikipedia"
	"github.com/Member09/scaling-laws/internal/cmdutil"
	"github.com/Member09/scaling-laws/internal/collector"
	"github.com/Member09/scaling-laws/internal/config"
	"github.com/Member09/scaling-laws/internal/sources"
	"github.com/Member09/scaling-laws/internal/tui"
)

var (
	collectSamanantar = samanantar.CollectWithParams
	collectWikipedia  = wikipedia.CollectWithParams
	collectWikilingua = wikilingua.CollectWithParams
	collectIndicLLM   = indicllm.CollectWithParams
	selectSource      = tui.SelectSource
)

// CLI represents the complete command structure for the corpora application
type CLI struct {
	// Global flags
	Limit    int  `help:"Maximum records per output file, 0 collects everything" default:"0"`
	NoStream bool `help:"Materialize each dataset in memory instead of paging lazily"`

	// Output flags
	OutputDir string `short:"o" help:"Base directory for raw corpus files"`

	// Datasette flags
	Datasette   bool   `help:"Record collection runs to a datastore" default:"false"`
	DatasetteDB string `help:"Path to SQLite database file" default:"./corpora.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./corpora_cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Collect CollectCmd `cmd:"" help:"Collect corpora from upstream sources"`
}

// CollectCmd represents the collect command and its subcommands
type CollectCmd struct {
	Samanantar SamanantarCmd `cmd:"" help:"Collect the Samanantar English-Hindi parallel corpus"`
	Wikipedia  WikipediaCmd  `cmd:"" help:"Collect the Hindi Wikipedia dump"`
	Wikilingua WikilinguaCmd `cmd:"" help:"Collect the WikiLingua Hindi summarization pairs"`
	Indicllm   IndicLLMCmd   `cmd:"" help:"Collect the IndicLLM mixed Hindi pretraining corpus"`
	All        AllCmd        `cmd:"" help:"Collect every built-in source"`
	Custom     CustomCmd     `cmd:"" help:"Collect sources defined in a YAML manifest"`
	Pick       PickCmd       `cmd:"" help:"Pick a source to collect interactively"`
}

// SamanantarCmd represents the samanantar collect command
type SamanantarCmd struct {
	Output string `short:"d" help:"Subdirectory under the raw output directory" default:"samanantar"`
}

// WikipediaCmd represents the wikipedia collect command
type WikipediaCmd struct {
	Output   string `short:"d" help:"Subdirectory under the raw output directory" default:"wikipedia"`
	Snapshot string `help:"Wikipedia dump snapshot config (e.g. 20231101.hi)"`
}

// WikilinguaCmd represents the wikilingua collect command
type WikilinguaCmd struct {
	Output string `short:"d" help:"Subdirectory under the raw output directory" default:"wikilingua"`
}

// IndicLLMCmd represents the indicllm collect command
type IndicLLMCmd struct {
	Output string `short:"d" help:"Subdirectory under the raw output directory" default:"indicllm"`
}

// AllCmd collects every built-in source in sequence
type AllCmd struct{}

// CustomCmd collects sources defined in a user-supplied manifest
type CustomCmd struct {
	Manifest string `arg:"" help:"Path to a YAML source manifest" type:"existingfile"`
}

// PickCmd opens an interactive picker over the built-in sources
type PickCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("corpora"),
		kong.Description("A tool to collect Hindi corpora from public datasets into line-delimited JSON."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("RawOutputDir", "./data/raw/")
	viper.SetDefault("Streaming", true)
	viper.SetDefault("RecordLimit", 0)

	// Provider defaults
	viper.SetDefault("hf.endpoint", "https://datasets-server.huggingface.co")
	viper.SetDefault("hf.pagesize", 100)

	// Datasette defaults
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./corpora.db")

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./corpora_cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	viper.SetDefault("wikipedia.snapshot", wikipedia.DefaultSnapshot)

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("HFToken", "HF_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetRecordLimit(cli.Limit)
	config.SetStreaming(!cli.NoStream)

	if cli.OutputDir != "" {
		viper.Set("rawoutputdir", cli.OutputDir)
	}

	// Update datasette config
	viper.Set("datasette.enabled", cli.Datasette)
	viper.Set("datasette.dbfile", cli.DatasetteDB)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// Run methods for each command

func (s *SamanantarCmd) Run() error {
	return collectSamanantar(samanantar.CollectParams{
		OutputDir: s.Output,
		Limit:     config.RecordLimit,
		Streaming: config.Streaming,
	})
}

func (w *WikipediaCmd) Run() error {
	if w.Snapshot != "" {
		viper.Set("wikipedia.snapshot", w.Snapshot)
	}

	return collectWikipedia(wikipedia.CollectParams{
		OutputDir: w.Output,
		Limit:     config.RecordLimit,
		Streaming: config.Streaming,
	})
}

func (w *WikilinguaCmd) Run() error {
	return collectWikilingua(wikilingua.CollectParams{
		OutputDir: w.Output,
		Limit:     config.RecordLimit,
		Streaming: config.Streaming,
	})
}

func (i *IndicLLMCmd) Run() error {
	return collectIndicLLM(indicllm.CollectParams{
		OutputDir: i.Output,
		Limit:     config.RecordLimit,
		Streaming: config.Streaming,
	})
}

func (a *AllCmd) Run() error {
	if err := collectSamanantar(samanantar.CollectParams{Limit: config.RecordLimit, Streaming: config.Streaming}); err != nil {
		return err
	}
	if err := collectWikipedia(wikipedia.CollectParams{Limit: config.RecordLimit, Streaming: config.Streaming}); err != nil {
		return err
	}
	if err := collectWikilingua(wikilingua.CollectParams{Limit: config.RecordLimit, Streaming: config.Streaming}); err != nil {
		return err
	}
	return collectIndicLLM(indicllm.CollectParams{Limit: config.RecordLimit, Streaming: config.Streaming})
}

func (c *CustomCmd) Run() error {
	specs, err := sources.LoadManifest(c.Manifest)
	if err != nil {
		return err
	}

	for _, spec := range specs {
		if err := runSpec(spec, ""); err != nil {
			return err
		}
	}
	return nil
}

func (p *PickCmd) Run() error {
	specs := builtinSpecs()

	result, err := selectSource(specs)
	if err != nil {
		return err
	}
	if result.Action != tui.ActionSelected {
		slog.Info("No source selected")
		return nil
	}

	return runSpec(*result.Selection, "")
}

func builtinSpecs() []sources.Spec {
	return []sources.Spec{
		samanantar.Spec(),
		wikipedia.Spec(),
		wikilingua.Spec(),
		indicllm.Spec(),
	}
}

// runSpec collects one source spec into its own subdirectory. Used by the
// manifest and picker paths, which bypass the per-source packages.
var runSpec = func(spec sources.Spec, outputDir string) error {
	cfg := cmdutil.BaseCommandConfig{
		OutputDir: outputDir,
		ConfigKey: spec.Name,
	}
	if err := cmdutil.SetupOutputDir(&cfg); err != nil {
		return err
	}

	c := collector.New(cfg.OutputDir, config.RecordLimit, config.Streaming)
	return c.Run(context.Background(), spec)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("CORPORA_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
