package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/knakagawa/shingidoc"
	"github.com/knakagawa/shingidoc/config"
	"github.com/knakagawa/shingidoc/gemini"
	"github.com/knakagawa/shingidoc/htmltomarkdown"
	sdhttp "github.com/knakagawa/shingidoc/http"
	"github.com/knakagawa/shingidoc/pdfcpu"
	"github.com/knakagawa/shingidoc/pipeline"
	"github.com/knakagawa/shingidoc/readability"
	"github.com/knakagawa/shingidoc/score"
	sdslog "github.com/knakagawa/shingidoc/slog"
	"github.com/knakagawa/shingidoc/sqlite"
	"github.com/knakagawa/shingidoc/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Run history service, exposed for end-to-end testing.
	RunService shingidoc.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shingidoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shingidoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Load the selection policy
	policy := config.Default()
	if cli.Config != "" {
		policy, err = config.Load(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load policy from %q: %w", cli.Config, err)
		}
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SHINGIDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService
	deps.RunsRoot = cli.RunsRoot

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(cli.Verbose),
	}))

	// Classification falls back from keyword rules to the Gemini oracle.
	// The oracle is optional; without an API key the chain still resolves
	// every link, defaulting unmatched ones to "other".
	chain := &score.Chain{
		Classifiers: []shingidoc.Classifier{score.NewRules()},
		OnError: func(url string, err error) {
			logger.Warn("classifier failed", "url", url, "error", err)
		},
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		chain.Classifiers = append(chain.Classifiers,
			sdslog.NewLoggingClassifier(gemini.NewClassifier(client), logger))
	}

	fetcher := sdslog.NewLoggingFetcher(sdhttp.NewFetcher(), logger)

	deps.Pipeline = &pipeline.Pipeline{
		Policy:        policy,
		Fetcher:       fetcher,
		PageExtractor: readability.NewFallback(trafilatura.NewExtractor()),
		Converter:     htmltomarkdown.NewConverter(),
		Classifier:    chain,
		Downloader:    sdhttp.NewDownloader(fetcher),
		Prober:        pdfcpu.NewProber(),
		TextExtractor: pdfcpu.NewExtractor(),
		Runs:          m.RunService,
		Logger:        logger,
	}

	return kongCtx.Run(deps)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func defaultDBPath() string {
	if path := os.Getenv("SHINGIDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "shingidoc.db"
	}
	dir := filepath.Join(home, ".shingidoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "shingidoc.db")
}
