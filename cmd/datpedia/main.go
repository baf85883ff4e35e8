package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/batch"
	"github.com/fwojciec/datpedia/bloom"
	"github.com/fwojciec/datpedia/fs"
	"github.com/fwojciec/datpedia/goquery"
	"github.com/fwojciec/datpedia/mimetype"
	"github.com/fwojciec/datpedia/normalize"
	dpslog "github.com/fwojciec/datpedia/slog"
	"github.com/fwojciec/datpedia/sqlite"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the build report, if requested.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("datpedia"),
		kong.Description("Transform an extracted encyclopedia dump into offline, script-free articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Exactly one corpus; anything else is a request for usage.
	if len(cli.Corpus) != 1 {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	corpus := cli.Corpus[0]
	if err := datpedia.ValidateCorpus(corpus); err != nil {
		return fmt.Errorf("invalid corpus: %s", datpedia.ErrorMessage(err))
	}

	logger := newLogger(stderr, cli.Verbose)

	// Wire dependencies
	source := fs.NewSourceTree(cli.Source)
	writer := fs.NewWriter(cli.Dest)

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Source:    source,
		Images:    source,
		Writer:    writer,
		Manifests: writer,
		Scanner:   goquery.NewScanner(),
	}

	if cli.Verbose {
		deps.Images = dpslog.NewLoggingImageStore(source, logger)
		deps.Writer = dpslog.NewLoggingDocumentWriter(writer, logger)
	}

	var slugs []string
	if cli.Articles != "" {
		slugs, err = readArticleList(cli.Articles)
		if err != nil {
			return err
		}
	}

	if cli.Preview {
		cmd := &PreviewCmd{
			Corpus: corpus,
			Slugs:  slugs,
		}
		return cmd.Run(deps)
	}

	var opts []normalize.Option
	if cli.CheckLinks {
		all, err := source.ListDocuments(ctx, corpus)
		if err != nil {
			return fmt.Errorf("list documents: %s", datpedia.ErrorMessage(err))
		}
		opts = append(opts, normalize.WithSlugSet(bloom.NewSlugSet(all)))
	}
	var normalizer datpedia.Normalizer = normalize.NewNormalizer(mimetype.NewInliner(deps.Images), opts...)
	if cli.Verbose {
		normalizer = dpslog.NewLoggingNormalizer(normalizer, logger)
	}

	deps.Orchestrator = &batch.Orchestrator{
		Source:      source,
		Normalizer:  normalizer,
		Writer:      deps.Writer,
		Concurrency: cli.Concurrency,
	}

	if cli.Report != "" {
		m.DB = sqlite.NewDB(cli.Report)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open report database at %q: %w", cli.Report, err)
		}
		defer m.Close()
		deps.Orchestrator.Reports = sqlite.NewReportService(m.DB)
	}

	cmd := &TransformCmd{
		Corpus:   corpus,
		Slugs:    slugs,
		Manifest: cli.Manifest,
	}
	return cmd.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readArticleList reads a slug list in manifest format.
func readArticleList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open article list: %w", err)
	}
	defer f.Close()

	slugs, err := datpedia.ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read article list %q: %w", path, err)
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}
