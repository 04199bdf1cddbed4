// Package main is the careermatch CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/careermatch/internal/catalog"
	"github.com/hyperjump/careermatch/internal/cli"
	"github.com/hyperjump/careermatch/internal/config"
	"github.com/hyperjump/careermatch/internal/ingest"
	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/pipeline"
	"github.com/hyperjump/careermatch/internal/server"
	"github.com/hyperjump/careermatch/internal/storage"
	"github.com/hyperjump/careermatch/internal/watcher"
	"github.com/hyperjump/careermatch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/careermatch/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development).
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "run":
		runBatch()
	case "serve", "server":
		runServe()
	case "watch":
		runWatch()
	case "student":
		runStudent()
	case "clusters":
		runClusters()
	case "catalog":
		runCatalog()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("careermatch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// commonFlags registers the flags every subcommand accepts.
func commonFlags(fs *flag.FlagSet) (configPath *string, debug *bool) {
	configPath = fs.String("config", defaultConfigPath, "config file path")
	debug = fs.Bool("debug", false, "enable debug logging")
	return configPath, debug
}

// setup loads the config and builds the logger, exiting on failure.
func setup(configPath string, debug bool) (*config.Config, *zap.Logger) {
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolved),
		zap.Bool("debug", debugMode),
	)
	return cfg, logger
}

func runBatch() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	outputFormat := fs.String("format", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])
	format := mustFormat(*outputFormat)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := executeRun(ctx, cfg, components, logger)
	if err != nil {
		logger.Fatal("Run failed", zap.Error(err))
	}
	info, err := components.Storage.GetRun(ctx, result.ID)
	if err != nil {
		logger.Fatal("Failed to read stored run", zap.Error(err))
	}
	if err := cli.WriteRun(os.Stdout, info, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// executeRun loads the configured snapshot, runs the pipeline, stores the
// result and rebuilds the catalog. A catalog failure does not fail the run.
func executeRun(ctx context.Context, cfg *config.Config, c *Components, logger *zap.Logger) (*models.RunResult, error) {
	in, err := ingest.Load(cfg.Sources(), logger.Named("ingest"))
	if err != nil {
		return nil, err
	}
	result, err := c.Engine.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := c.Storage.SaveRun(ctx, result); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	if c.Catalog != nil {
		if err := c.Catalog.Rebuild(ctx, in.Jobs, in.Courses); err != nil {
			logger.Warn("catalog rebuild failed", zap.Error(err))
		}
	}
	logger.Info("run stored",
		zap.String("run_id", result.ID),
		zap.Int("students", len(result.Students)),
		zap.Int("clusters", len(result.Clusters)),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
	)
	return result, nil
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	watchInputs := fs.Bool("watch", false, "re-run the batch when input files change")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var idx catalog.Index
	if components.Catalog != nil {
		idx = components.Catalog
	}
	srv := server.NewServer(components.Storage, idx, cfg, logger.Named("server"))
	if *watchInputs {
		w := newInputWatcher(cfg, logger, func() {
			if _, err := executeRun(ctx, cfg, components, logger); err != nil {
				logger.Error("watch run failed", zap.Error(err))
				return
			}
			srv.CatalogRebuilt()
		})
		if err := w.Start(ctx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := executeRun(ctx, cfg, components, logger); err != nil {
		logger.Error("initial run failed", zap.Error(err))
	}
	w := newInputWatcher(cfg, logger, func() {
		if _, err := executeRun(ctx, cfg, components, logger); err != nil {
			logger.Error("watch run failed", zap.Error(err))
		}
	})
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()
	logger.Info("watching inputs", zap.Strings("directories", w.Directories()))

	<-ctx.Done()
	logger.Info("Shutting down...")
}

func newInputWatcher(cfg *config.Config, logger *zap.Logger, rerun func()) *watcher.Watcher {
	paths := cfg.Sources().Paths()
	if len(paths) == 0 && cfg.Input.Directory != "" {
		paths = []string{cfg.Input.Directory}
	}
	return watcher.NewWatcher(paths, cfg.Input.Extensions,
		func(changed []string) {
			logger.Info("inputs changed", zap.Strings("paths", changed))
			rerun()
		},
		watcher.WithLogger(logger.Named("watcher")),
		watcher.WithDebounce(time.Duration(cfg.Input.DebounceMillis)*time.Millisecond),
	)
}

func runStudent() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("student", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	outputFormat := fs.String("format", "text", "output format: text or json")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: careermatch student [flags] <student-id>")
		os.Exit(1)
	}
	format := mustFormat(*outputFormat)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	run, err := components.Storage.LatestRun(ctx)
	if err != nil {
		exitLookup("run", err)
	}
	result, err := components.Storage.GetStudentResult(ctx, run.ID, fs.Arg(0))
	if err != nil {
		exitLookup("student "+fs.Arg(0), err)
	}
	if err := cli.WriteStudent(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runClusters() {
	fs := flag.NewFlagSet("clusters", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	outputFormat := fs.String("format", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])
	format := mustFormat(*outputFormat)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	run, err := components.Storage.LatestRun(ctx)
	if err != nil {
		exitLookup("run", err)
	}
	clusters, err := components.Storage.ListClusters(ctx, run.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "List clusters failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteClusters(os.Stdout, run, clusters, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	outputFormat := fs.String("format", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])
	format := mustFormat(*outputFormat)

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	run, err := components.Storage.LatestRun(context.Background())
	if err != nil {
		exitLookup("run", err)
	}
	if err := cli.WriteRun(os.Stdout, run, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// printCatalogUsage prints catalog subcommand usage.
func printCatalogUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: careermatch catalog [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  careermatch catalog cloud engineer
  careermatch catalog --kind course docker
  careermatch catalog --fuzzy kubernets
  careermatch catalog --server http://localhost:8080 sql   # while serve holds the index
`)
}

func runCatalog() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	serverURL := fs.String("server", "", "server URL; empty opens the catalog index directly")
	kindFlag := fs.String("kind", "", "restrict to job or course")
	limit := fs.Int("limit", catalog.DefaultLimit, "number of results")
	fuzzy := fs.Bool("fuzzy", false, "enable fuzzy matching for typo tolerance")
	outputFormat := fs.String("format", "text", "output format: text or json")
	fs.Usage = func() { printCatalogUsage(fs) }
	_ = fs.Parse(args)

	query := buildQuery(fs.Args())
	if query == "" {
		printCatalogUsage(fs)
		os.Exit(1)
	}
	format := mustFormat(*outputFormat)
	kind, err := catalog.ParseKind(*kindFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serverURL != "" {
		// The server process holds the index lock.
		resp, err := catalogViaHTTP(*serverURL, query, kind, *limit, *fuzzy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Catalog search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteCatalogHits(os.Stdout, query, resp.Hits, resp.Suggestion, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()
	idx, err := catalog.NewBleveIndex(cfg.Storage.CatalogIndexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	hits, suggestion, err := searchCatalog(context.Background(), idx, query, kind, *limit, *fuzzy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catalog search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteCatalogHits(os.Stdout, query, hits, suggestion, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// searchCatalog looks up query in the local index with spelling suggestions
// drawn from the same index.
func searchCatalog(ctx context.Context, idx *catalog.BleveIndex, query string, kind catalog.Kind, limit int, fuzzy bool) ([]catalog.Hit, string, error) {
	return catalog.Lookup(ctx, idx, catalog.NewSuggester(idx), query, kind, limit, fuzzy)
}

type catalogHTTPResponse struct {
	Hits       []catalog.Hit `json:"hits"`
	Suggestion string        `json:"suggestion"`
}

func catalogViaHTTP(serverURL, query string, kind catalog.Kind, limit int, fuzzy bool) (*catalogHTTPResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if kind != "" {
		params.Set("kind", string(kind))
	}
	params.Set("limit", strconv.Itoa(limit))
	if fuzzy {
		params.Set("fuzzy", "true")
	}
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/catalog/search?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out catalogHTTPResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// buildQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the
// positional arguments to the front so that flag.Parse() sees them.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func mustFormat(s string) cli.OutputFormat {
	format, err := cli.ParseFormat(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return format
}

func exitLookup(what string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No %s found. Run `careermatch run` first.\n", what)
	} else {
		fmt.Fprintf(os.Stderr, "Lookup of %s failed: %v\n", what, err)
	}
	os.Exit(1)
}

// Components holds the long-lived dependencies of a command. Catalog is nil
// when the index could not be opened.
type Components struct {
	Storage storage.Storage
	Catalog *catalog.BleveIndex
	Engine  *pipeline.Engine
}

// Close releases storage and index handles.
func (c *Components) Close() {
	if c.Catalog != nil {
		_ = c.Catalog.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, withCatalog bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c := &Components{
		Storage: store,
		Engine:  pipeline.NewEngine(cfg.PipelineConfig(), pipeline.WithLogger(logger.Named("pipeline"))),
	}
	if withCatalog {
		// Another process (usually serve) may hold the index; results are
		// still computed and stored without it.
		idx, err := catalog.NewBleveIndex(cfg.Storage.CatalogIndexPath)
		if err != nil {
			logger.Warn("catalog index unavailable", zap.String("path", cfg.Storage.CatalogIndexPath), zap.Error(err))
		} else {
			c.Catalog = idx
		}
	}
	return c, nil
}

func printUsage() {
	fmt.Println(`careermatch - Student to job matching, recommendation and clustering engine

Usage:
  careermatch run [flags]                 Run the batch over the configured inputs and store the result
  careermatch serve [flags]               Start the HTTP API (--watch re-runs on input changes)
  careermatch watch [flags]               Run once, then re-run whenever inputs change
  careermatch student [flags] <id>        Show the stored result for one student
  careermatch clusters [flags]            Show the cluster profiles of the latest run
  careermatch catalog [flags] <query>     Search jobs and courses
  careermatch status [flags]              Show the latest run summary
  careermatch version                     Show version
  careermatch help                        Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/careermatch/config.yaml)
  --debug            Enable debug logging
  --format string    Output format: text or json (run, student, clusters, catalog, status)

Catalog Flags:
  --kind string      Restrict to job or course
  --limit int        Number of results (default: 10)
  --fuzzy            Enable fuzzy matching for typo tolerance
  --server string    Query a running server instead of opening the index

Examples:
  careermatch run
  careermatch serve --watch
  careermatch student S001 --format json
  careermatch catalog --kind course docker`)
}
