// Package main is the entry point for the notes recovery tool.
// It wires together all dependencies and exposes them as CLI commands and
// an MCP server.
//
// This file is intentionally minimal - all business logic lives in internal/.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/egoistcookie/playWright/internal/cache"
	"github.com/egoistcookie/playWright/internal/config"
	"github.com/egoistcookie/playWright/internal/fetcher"
	mcphandlers "github.com/egoistcookie/playWright/internal/mcp"
	"github.com/egoistcookie/playWright/internal/pipeline"
	"github.com/egoistcookie/playWright/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

const (
	serverName    = "notes-recover"
	serverVersion = "v0.1.0"
)

var (
	configPath string
	cacheDir   string
)

// setupLogger creates an slog logger that writes to a debug file in the cache directory.
// File format: debug-YYYY-MM-DD.txt
func setupLogger(cacheDir string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create cache dir: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(cacheDir, fmt.Sprintf("debug-%s.txt", date))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(handler), file, nil
}

// app holds the wired dependencies shared by all commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	close    func()
}

// newApp loads configuration and wires the pipeline. mode overrides the
// configured fetch mode when non-empty.
func newApp(mode string) (*app, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if mode == "" {
		mode = cfg.FetchMode
	}
	fetchMode, err := fetcher.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	closeLog := func() {}
	logger, logFile, err := setupLogger(cfg.CacheDir)
	if err != nil {
		log.Printf("Warning: failed to setup file logger: %v", err)
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	} else {
		closeLog = func() { logFile.Close() }
	}

	// Cache: stores exports in memory and on disk
	fileCache, err := cache.NewFileCache(cfg.CacheDir)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("create cache: %w", err)
	}

	// Documents: the exported text files the user reads
	docs, err := cache.NewDocumentStore(cfg.ExportDir)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	loader := fetcher.NewLoader(fetchMode,
		fetcher.WithLogger(logger),
		fetcher.WithValidityRules(cfg.ValidityRules()),
	)

	p := pipeline.New(fileCache, docs, loader, search.NewNoteSearcher(), pipeline.OSFileReader{}, pipeline.RealClock{},
		pipeline.WithLogger(logger),
		pipeline.WithRules(cfg.Rules()),
		pipeline.WithFallback(cfg.FallbackLimit, cfg.MinBlockLength),
	)

	logger.Info("app ready",
		"cache_dir", cfg.CacheDir,
		"export_dir", cfg.ExportDir,
		"fetch_mode", fetchMode,
	)

	return &app{cfg: cfg, logger: logger, pipeline: p, close: closeLog}, nil
}

func main() {
	// IMPORTANT: MCP stdio servers must log to stderr only (for standard log package).
	log.SetOutput(os.Stderr)

	rootCmd := &cobra.Command{
		Use:          "notes-recover",
		Short:        "Recover diary entries from scraped note-app page text",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $NOTES_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Directory for cache and log files (overrides config)")

	rootCmd.AddCommand(recoverCmd())
	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func recoverCmd() *cobra.Command {
	var (
		force bool
		mode  string
	)

	cmd := &cobra.Command{
		Use:   "recover <source>...",
		Short: "Recover entries from page text files, saved pages or URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(mode)
			if err != nil {
				return err
			}
			defer a.close()

			failed := 0
			for _, source := range args {
				res, err := a.pipeline.RecoverSource(cmd.Context(), source, force)
				if err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "%s: %v\n", source, err)
					continue
				}

				fmt.Printf("%s\n  export_id: %s\n  entries: %d\n", source, res.ExportID, res.NumEntries)
				if res.FromCache {
					fmt.Println("  (from cache)")
				}
				if res.OutputPath != "" {
					fmt.Printf("  output: %s\n", res.OutputPath)
				}
				if res.FallbackPath != "" {
					fmt.Printf("  no entries found, page text saved to: %s\n", res.FallbackPath)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "recover again even if cached")
	cmd.Flags().StringVar(&mode, "mode", "", "fetch mode: auto, text, markdown, dom or readability (default from config)")
	return cmd
}

func splitCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Split a marker-format export into one file per title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("")
			if err != nil {
				return err
			}
			defer a.close()

			paths, err := a.pipeline.Split(args[0], out)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d notes\n", len(paths))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output directory (default: 分割后的笔记 next to the file)")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Report per-title statistics of a marker-format export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("")
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.pipeline.Stats(args[0])
			if err != nil {
				return err
			}
			fmt.Print(report.Format())
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("")
			if err != nil {
				return err
			}
			defer a.close()

			handlers := mcphandlers.NewHandlers(a.pipeline, a.logger)

			server := mcp.NewServer(&mcp.Implementation{
				Name:    serverName,
				Version: serverVersion,
			}, &mcp.ServerOptions{
				Instructions: "Use notes_recover to turn scraped note pages into a deduplicated diary export (cached), then notes_query to fetch token-bounded excerpts.",
			})

			mcp.AddTool(server, &mcp.Tool{
				Name:        "notes_recover",
				Description: "Recover diary entries from scraped page text files, saved HTML pages or URLs and write the export document.",
			}, handlers.NotesRecover)

			mcp.AddTool(server, &mcp.Tool{
				Name:        "notes_query",
				Description: "Query recovered entries by prompt, by day, or both. If export_id is omitted, searches ALL exports. Returns token-bounded excerpts.",
			}, handlers.NotesQuery)

			mcp.AddTool(server, &mcp.Tool{
				Name:        "notes_list",
				Description: "List all recovered exports with their source and entry count.",
			}, handlers.NotesList)

			mcp.AddTool(server, &mcp.Tool{
				Name:        "notes_split",
				Description: "Split a marker-format export into one text file per title.",
			}, handlers.NotesSplit)

			mcp.AddTool(server, &mcp.Tool{
				Name:        "notes_stats",
				Description: "Report per-title character counts and empty notes of a marker-format export.",
			}, handlers.NotesStats)

			a.logger.Info("server ready, waiting for requests", "name", serverName, "version", serverVersion)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				a.logger.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}
}
