package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Member09/scaling-laws/cmd/indicllm"
	"github.com/Member09/scaling-laws/cmd/samanantar"
	"github.com/Member09/scaling-laws/cmd/wikilingua"
	"github.com/Member09/scaling-laws/cmd/wikipedia"
	"github.com/Member09/scaling-laws/internal/config"
	"github.com/Member09/scaling-laws/internal/sources"
	"github.com/Member09/scaling-laws/internal/testutil"
	"github.com/Member09/scaling-laws/internal/tui"
)

func resetCmdState(t *testing.T) {
	origStreaming := config.Streaming
	origLimit := config.RecordLimit

	t.Cleanup(func() {
		config.Streaming = origStreaming
		config.RecordLimit = origLimit
		viper.Reset()
	})

	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"corpora"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("corpora"),
		kong.Description("A tool to collect Hindi corpora from public datasets into line-delimited JSON."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Limit:       500,
		NoStream:    true,
		OutputDir:   "/tmp/raw",
		Datasette:   true,
		DatasetteDB: "/tmp/corpora.db",
		CacheDBFile: "/tmp/cache.db",
		CacheTTL:    "12h",
	}

	updateGlobalConfig(cli)

	assert.Equal(t, 500, config.RecordLimit)
	assert.False(t, config.Streaming)
	assert.Equal(t, "/tmp/raw", viper.GetString("rawoutputdir"))
	assert.True(t, viper.GetBool("datasette.enabled"))
	assert.Equal(t, "/tmp/corpora.db", viper.GetString("datasette.dbfile"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "collect", "wikipedia")

	assert.Equal(t, 0, cli.Limit, "Limit should default to collecting everything")
	assert.False(t, cli.NoStream, "streaming should be the default")
	assert.False(t, cli.Datasette, "Datasette should default to false")
	assert.Equal(t, "./corpora.db", cli.DatasetteDB)
	assert.Equal(t, "./corpora_cache.db", cli.CacheDBFile)
	assert.Equal(t, "720h", cli.CacheTTL)
}

func TestCollectCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t,
		"--limit", "1000",
		"--no-stream",
		"collect", "wikipedia",
		"-d", "wiki_raw",
		"--snapshot", "20240601.hi")

	assert.Equal(t, 1000, cli.Limit)
	assert.True(t, cli.NoStream)
	assert.Equal(t, "wiki_raw", cli.Collect.Wikipedia.Output)
	assert.Equal(t, "20240601.hi", cli.Collect.Wikipedia.Snapshot)
}

func TestSourceCommandsDelegate(t *testing.T) {
	resetCmdState(t)
	t.Cleanup(func() {
		collectSamanantar = samanantar.CollectWithParams
		collectWikipedia = wikipedia.CollectWithParams
		collectWikilingua = wikilingua.CollectWithParams
		collectIndicLLM = indicllm.CollectWithParams
	})

	config.SetRecordLimit(25)
	config.SetStreaming(true)

	var gotSamanantar samanantar.CollectParams
	collectSamanantar = func(params samanantar.CollectParams) error {
		gotSamanantar = params
		return nil
	}

	cmd := &SamanantarCmd{Output: "sam_raw"}
	require.NoError(t, cmd.Run())
	assert.Equal(t, "sam_raw", gotSamanantar.OutputDir)
	assert.Equal(t, 25, gotSamanantar.Limit)
	assert.True(t, gotSamanantar.Streaming)

	var wikipediaCalled bool
	collectWikipedia = func(params wikipedia.CollectParams) error {
		wikipediaCalled = true
		return nil
	}

	wcmd := &WikipediaCmd{Snapshot: "20240601.hi"}
	require.NoError(t, wcmd.Run())
	assert.True(t, wikipediaCalled)
	assert.Equal(t, "20240601.hi", viper.GetString("wikipedia.snapshot"))
}

func TestAllCommandRunsEverySource(t *testing.T) {
	resetCmdState(t)
	t.Cleanup(func() {
		collectSamanantar = samanantar.CollectWithParams
		collectWikipedia = wikipedia.CollectWithParams
		collectWikilingua = wikilingua.CollectWithParams
		collectIndicLLM = indicllm.CollectWithParams
	})

	var order []string
	collectSamanantar = func(samanantar.CollectParams) error {
		order = append(order, "samanantar")
		return nil
	}
	collectWikipedia = func(wikipedia.CollectParams) error {
		order = append(order, "wikipedia")
		return nil
	}
	collectWikilingua = func(wikilingua.CollectParams) error {
		order = append(order, "wikilingua")
		return nil
	}
	collectIndicLLM = func(indicllm.CollectParams) error {
		order = append(order, "indicllm")
		return nil
	}

	cmd := &AllCmd{}
	require.NoError(t, cmd.Run())
	assert.Equal(t, []string{"samanantar", "wikipedia", "wikilingua", "indicllm"}, order)
}

func TestCustomCommandLoadsManifest(t *testing.T) {
	resetCmdState(t)
	originalRunSpec := runSpec
	t.Cleanup(func() { runSpec = originalRunSpec })

	env := testutil.NewTestEnv(t)
	env.WriteFileString("sources.yaml", `sources:
  - name: oscar
    candidates:
      - dataset: oscar-corpus/OSCAR-2301
        config: hi
    outputs:
      - file: hi_mono.jsonl
        kind: monolingual
        lang: hi
`)

	var collected []string
	runSpec = func(spec sources.Spec, outputDir string) error {
		collected = append(collected, spec.Name)
		return nil
	}

	cmd := &CustomCmd{Manifest: env.Path("sources.yaml")}
	require.NoError(t, cmd.Run())
	assert.Equal(t, []string{"oscar"}, collected)
}

func TestCustomCommandRejectsBrokenManifest(t *testing.T) {
	resetCmdState(t)

	env := testutil.NewTestEnv(t)
	env.WriteFileString("sources.yaml", "sources:\n  - name: broken\n")

	cmd := &CustomCmd{Manifest: env.Path("sources.yaml")}
	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestPickCommandCollectsSelection(t *testing.T) {
	resetCmdState(t)
	originalRunSpec := runSpec
	t.Cleanup(func() {
		selectSource = tui.SelectSource
		runSpec = originalRunSpec
	})

	spec := wikilingua.Spec()
	selectSource = func(specs []sources.Spec) (tui.SelectionResult, error) {
		require.Len(t, specs, 4, "picker should list every built-in source")
		return tui.SelectionResult{Action: tui.ActionSelected, Selection: &spec}, nil
	}

	var collected string
	runSpec = func(spec sources.Spec, outputDir string) error {
		collected = spec.Name
		return nil
	}

	cmd := &PickCmd{}
	require.NoError(t, cmd.Run())
	assert.Equal(t, "wikilingua", collected)
}

func TestPickCommandStoppedIsNotAnError(t *testing.T) {
	resetCmdState(t)
	t.Cleanup(func() { selectSource = tui.SelectSource })

	selectSource = func([]sources.Spec) (tui.SelectionResult, error) {
		return tui.SelectionResult{Action: tui.ActionStopped}, nil
	}

	cmd := &PickCmd{}
	require.NoError(t, cmd.Run())
}

func TestInitLogging(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
	}{
		{"default", ""},
		{"debug", "debug"},
		{"DEBUG", "DEBUG"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("CORPORA_LOG_LEVEL", tt.envValue)
			}
			require.NotPanics(t, func() {
				initLogging()
			})
		})
	}
}
