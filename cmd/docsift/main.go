// Command docsift extracts the text and table rows of a PDF or image.
//
// Usage:
//
//	docsift [-config file] [-kind pdf|image] [-json] [-chunks jsonl|json] file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tsawler/docsift"
	"github.com/tsawler/docsift/format"
	"github.com/tsawler/docsift/config"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/rag"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	kindFlag := flag.String("kind", "", "Document kind: pdf or image (default: detect)")
	asJSON := flag.Bool("json", false, "Print the result as JSON")
	chunks := flag.String("chunks", "", "Print chunks instead of text: jsonl or json")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: docsift [-config file] [-kind pdf|image] [-json] [-chunks jsonl|json] <file>")
		os.Exit(2)
	}

	if err := run(*configPath, *kindFlag, *asJSON, *chunks, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "docsift: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, kindFlag string, asJSON bool, chunkFormat, path string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var kind model.Kind
	if kindFlag != "" {
		kind, err = model.ParseKind(kindFlag)
		if err != nil {
			return err
		}
	} else {
		kind = format.Resolve(data, path, "").Kind()
		if kind == "" {
			return fmt.Errorf("cannot detect the kind of %s, use -kind", path)
		}
	}

	ex, err := docsift.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := ex.Extract(ctx, data, kind, path)
	if err != nil {
		return err
	}

	switch {
	case chunkFormat != "":
		ef, err := rag.ParseExportFormat(chunkFormat)
		if err != nil {
			return err
		}
		splitter := &rag.Splitter{
			ChunkSize:      cfg.Chunking.ChunkSize,
			Overlap:        cfg.Chunking.Overlap,
			TokenRatio:     cfg.Chunking.TokenRatio,
			TokenThreshold: cfg.Chunking.TokenThreshold,
		}
		exporter := rag.NewExporter(ef)
		exporter.Source = path
		return exporter.Export(splitter.Chunks(result.Text), os.Stdout)
	case asJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	default:
		fmt.Println(result.Text)
		for _, row := range result.Tables {
			fmt.Println(row)
		}
		logger.Info("done", "method", result.Method, "pages", result.Pages, "tables", result.TableCount())
		return nil
	}
}
