// Package mcp provides MCP tool handlers for the notes recovery server.
// These handlers parse MCP request arguments and delegate to the Pipeline.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/egoistcookie/playWright/internal/pipeline"
	"github.com/egoistcookie/playWright/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RecoverArgs defines the arguments for the notes_recover tool.
type RecoverArgs struct {
	Sources []string `json:"sources" jsonschema_description:"Scraped page text files, saved HTML pages or URLs to recover notes from"`
	Force   bool     `json:"force,omitempty" jsonschema_description:"Recover again even if the same text was recovered before (default: false)"`
}

// QueryArgs defines the arguments for the notes_query tool.
type QueryArgs struct {
	ExportID  string `json:"export_id,omitempty" jsonschema_description:"export_id returned from notes_recover (omit to search all exports)"`
	Prompt    string `json:"prompt,omitempty" jsonschema_description:"Short query prompt (e.g. '旅行')"`
	Date      string `json:"date,omitempty" jsonschema_description:"Only entries titled with this day (e.g. '2023-04-01' or '2023年4月1日')"`
	MaxTokens int    `json:"max_tokens,omitempty" jsonschema_description:"Approx max tokens to return (default 500)"`
}

// SplitArgs defines the arguments for the notes_split tool.
type SplitArgs struct {
	Path string `json:"path" jsonschema_description:"Marker-format export file to split by title"`
	Out  string `json:"out,omitempty" jsonschema_description:"Output directory (default: 分割后的笔记 next to the file)"`
}

// StatsArgs defines the arguments for the notes_stats tool.
type StatsArgs struct {
	Path string `json:"path" jsonschema_description:"Marker-format export file to analyze"`
}

// Handlers wraps the pipeline and provides MCP tool handlers.
type Handlers struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// NewHandlers creates handlers with the given pipeline and logger.
func NewHandlers(p *pipeline.Pipeline, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{pipeline: p, logger: logger}
}

func textResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// NotesRecover handles the notes_recover tool call.
// Each source is recovered independently; failures are reported per source.
func (h *Handlers) NotesRecover(ctx context.Context, req *mcp.CallToolRequest, args RecoverArgs) (*mcp.CallToolResult, any, error) {
	if len(args.Sources) == 0 {
		h.logger.Error("notes_recover: sources is required")
		return nil, nil, fmt.Errorf("sources is required (provide at least one source)")
	}

	h.logger.Debug("notes_recover: recovering", "count", len(args.Sources), "force", args.Force)

	var sb strings.Builder
	recovered, cached, failed := 0, 0, 0

	for _, source := range args.Sources {
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}

		res, err := h.pipeline.RecoverSource(ctx, source, args.Force)
		if err != nil {
			h.logger.Error("notes_recover: failed", "source", source, "error", err)
			failed++
			fmt.Fprintf(&sb, "- FAILED: %s (%v)\n", source, err)
			continue
		}

		recovered++
		if res.FromCache {
			cached++
		}
		fmt.Fprintf(&sb, "- %s\n  export_id: %s\n  entries: %d\n", source, res.ExportID, res.NumEntries)
		if res.OutputPath != "" {
			fmt.Fprintf(&sb, "  output: %s\n", res.OutputPath)
		}
		if res.FallbackPath != "" {
			fmt.Fprintf(&sb, "  fallback: %s\n", res.FallbackPath)
		}
		if !res.FromCache {
			fmt.Fprintf(&sb, "  duplicates: %d, dropped: %d\n",
				res.Stats.Duplicates, res.Stats.DroppedEmpty+res.Stats.DroppedShort+res.Stats.DroppedCleaned)
		}
	}

	h.logger.Info("notes_recover: complete",
		"recovered", recovered,
		"cached", cached,
		"failed", failed,
	)

	header := fmt.Sprintf("Recovered %d sources (%d from cache, %d failed)\n\n", recovered, cached, failed)
	return textResult(header + sb.String()), nil, nil
}

// NotesQuery handles the notes_query tool call.
// It searches recovered entries and returns token-bounded excerpts.
func (h *Handlers) NotesQuery(ctx context.Context, req *mcp.CallToolRequest, args QueryArgs) (*mcp.CallToolResult, any, error) {
	exportID := strings.TrimSpace(args.ExportID)
	prompt := strings.TrimSpace(args.Prompt)
	date := strings.TrimSpace(args.Date)

	if prompt == "" && date == "" {
		h.logger.Error("notes_query: prompt or date is required")
		return nil, nil, fmt.Errorf("prompt or date is required")
	}

	h.logger.Debug("notes_query: searching",
		"export_id", exportID,
		"prompt", prompt,
		"date", date,
		"max_tokens", args.MaxTokens,
	)

	answer, err := h.pipeline.Query(exportID, search.Query{Text: prompt, Date: date, MaxTokens: args.MaxTokens})
	if err != nil {
		h.logger.Error("notes_query: failed", "error", err)
		return nil, nil, err
	}

	h.logger.Info("notes_query: success",
		"prompt", prompt,
		"answer_length", len(answer),
	)

	return textResult(answer), nil, nil
}

// NotesList handles the notes_list tool call.
func (h *Handlers) NotesList(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
	h.logger.Debug("notes_list: listing exports")

	exports := h.pipeline.List()
	if len(exports) == 0 {
		return textResult("No exports recovered yet. Use notes_recover first."), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recovered exports: %d\n\n", len(exports))

	const maxDisplay = 50
	for i, exp := range exports {
		if i >= maxDisplay {
			fmt.Fprintf(&sb, "\n... and %d more exports.", len(exports)-maxDisplay)
			break
		}
		fmt.Fprintf(&sb, "- export_id: %s\n", exp.ExportID)
		fmt.Fprintf(&sb, "  source: %s\n", exp.Source)
		fmt.Fprintf(&sb, "  entries: %d\n", len(exp.Entries))
		fmt.Fprintf(&sb, "  exported_at: %s\n", exp.ExportedAt.Format(time.RFC3339))
	}

	h.logger.Info("notes_list: success", "count", len(exports))

	return textResult(sb.String()), nil, nil
}

// NotesSplit handles the notes_split tool call.
func (h *Handlers) NotesSplit(ctx context.Context, req *mcp.CallToolRequest, args SplitArgs) (*mcp.CallToolResult, any, error) {
	path := strings.TrimSpace(args.Path)
	if path == "" {
		h.logger.Error("notes_split: path is required")
		return nil, nil, fmt.Errorf("path is required")
	}

	h.logger.Debug("notes_split: splitting", "path", path, "out", args.Out)

	paths, err := h.pipeline.Split(path, strings.TrimSpace(args.Out))
	if err != nil {
		h.logger.Error("notes_split: failed", "path", path, "error", err)
		return nil, nil, err
	}

	h.logger.Info("notes_split: success", "path", path, "files", len(paths))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %d notes:\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	return textResult(sb.String()), nil, nil
}

// NotesStats handles the notes_stats tool call.
func (h *Handlers) NotesStats(ctx context.Context, req *mcp.CallToolRequest, args StatsArgs) (*mcp.CallToolResult, any, error) {
	path := strings.TrimSpace(args.Path)
	if path == "" {
		h.logger.Error("notes_stats: path is required")
		return nil, nil, fmt.Errorf("path is required")
	}

	report, err := h.pipeline.Stats(path)
	if err != nil {
		h.logger.Error("notes_stats: failed", "path", path, "error", err)
		return nil, nil, err
	}

	h.logger.Info("notes_stats: success", "path", path, "titles", len(report.Titles))

	return textResult(report.Format()), nil, nil
}
