package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/badele/textanalyzer/internal/config"
	"github.com/badele/textanalyzer/internal/exporter"
	"github.com/badele/textanalyzer/internal/importer/text"
	"github.com/badele/textanalyzer/internal/logging"
	"github.com/badele/textanalyzer/internal/metrics"
	"github.com/badele/textanalyzer/internal/processor"
	"github.com/badele/textanalyzer/internal/store"
)

var version = "dev"

type CLI struct {
	Config  kong.ConfigFlag  `help:"YAML configuration file." placeholder:"FILE"`
	Version kong.VersionFlag `help:"Print version and exit."`

	File string `arg:"" optional:"" type:"path" help:"Text file to analyze. Reads stdin when omitted."`

	DB          string `name:"db" default:"analysis.db" type:"path" env:"TEXTANALYZER_DB" help:"SQLite database file."`
	Store       string `default:"sqlite" enum:"sqlite,memory,redis" env:"TEXTANALYZER_STORE" help:"Store driver (${enum})."`
	RedisAddr   string `default:"localhost:6379" env:"TEXTANALYZER_REDIS_ADDR" help:"Redis address for --store=redis."`
	RedisPrefix string `default:"textanalyzer:" help:"Redis key prefix."`

	Encoding    string `short:"e" default:"utf8" enum:"utf8,cp437,cp850,iso-8859-1" help:"Input encoding (${enum})."`
	MaxInputLen int    `default:"200000" help:"Maximum input length in bytes."`
	MaxTokens   int    `default:"3000" help:"Maximum number of tokens stored."`
	MaxTokenLen int    `default:"63" help:"Maximum token length in bytes."`

	Format  string `short:"f" default:"text" enum:"text,table,json" help:"Result format (${enum})."`
	Verbose bool   `short:"v" help:"List the tokens found."`
	NoColor bool   `help:"Disable colored output."`

	LogLevel    string `default:"warn" enum:"debug,info,warn,error" env:"TEXTANALYZER_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat   string `default:"text" enum:"text,json" help:"Log format (${enum})."`
	MetricsFile string `type:"path" help:"Write run metrics to this Prometheus textfile."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("textanalyzer"),
		kong.Description("Tokenize a text and store it with its tokens and statistics."),
		kong.UsageOnError(),
		kong.Configuration(config.YAML, "textanalyzer.yaml", "~/.config/textanalyzer/config.yaml"),
		kong.Vars{"version": version},
	)

	os.Exit(run(context.Background(), &cli, os.Stdin, os.Stdout, os.Stderr))
}

// failureMessages maps the failing pipeline state to the CLI error message.
var failureMessages = map[processor.State]string{
	processor.StateReadInput:   "Failed to read input",
	processor.StateStoreText:   "Failed to insert text",
	processor.StateTokenize:    "Tokenization process error",
	processor.StateStoreTokens: "Tokenization process error",
	processor.StateStoreStats:  "Failed to insert stats",
	processor.StateCloseStore:  "Failed to close database",
}

func run(ctx context.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) int {
	if cli.NoColor {
		exporter.SetColor(false)
	}

	log := logging.NewLogger(logging.LogConfig{
		Level:  cli.LogLevel,
		Format: cli.LogFormat,
		Output: stderr,
	})

	inOpts := text.InputOptions{
		Source:   "stdin",
		MaxLen:   cli.MaxInputLen,
		Encoding: cli.Encoding,
	}

	input := stdin
	prompt := false
	if cli.File != "" {
		f, err := os.Open(cli.File)
		if err != nil {
			exporter.DisplayError(stderr, "Failed to read input", err)
			return 1
		}
		defer f.Close()
		input = f
		inOpts.Source = cli.File
	} else if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		prompt = true
		inOpts.SingleLine = true
	}

	st, err := store.NewStore(ctx, store.StoreType(cli.Store),
		store.WithPath(cli.DB),
		store.WithRedisAddr(cli.RedisAddr),
		store.WithRedisPrefix(cli.RedisPrefix),
	)
	if err != nil {
		log.Error("open store", "store", cli.Store, "error", err)
		exporter.DisplayError(stderr, "Database initialization failed", err)
		return 1
	}

	// prompt only once the database is usable
	if prompt {
		exporter.DisplayPrompt(stdout)
	}

	m := metrics.New()
	defer func() {
		if err := m.WriteTextfile(cli.MetricsFile); err != nil {
			log.Warn("metrics not written", "error", err)
		}
	}()

	p := processor.NewPipeline(st,
		processor.WithInputOptions(inOpts),
		processor.WithTokenizerOptions(text.Options{
			MaxTokens:   cli.MaxTokens,
			MaxTokenLen: cli.MaxTokenLen,
		}),
		processor.WithLogger(log),
		processor.WithMetrics(m),
	)

	res, err := p.Run(ctx, input)
	if err != nil {
		msg := "Analysis failed"
		var runErr *processor.RunError
		if errors.As(err, &runErr) {
			if m, ok := failureMessages[runErr.State]; ok {
				msg = m
			}
		}
		exporter.DisplayError(stderr, msg, err)
		return 1
	}

	switch cli.Format {
	case "json":
		err = exporter.ExportJSON(stdout, res)
	case "table":
		if cli.Verbose {
			exporter.DisplayTokens(stdout, res)
		}
		err = exporter.ExportTokensToTable(res, stdout)
	default:
		err = exporter.ExportText(stdout, res, cli.Verbose)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing result: %v\n", err)
		return 1
	}

	return 0
}
