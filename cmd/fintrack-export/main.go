// Command fintrack-export dumps the persisted ledger as CSV or JSON, or
// pushes it to the configured Google Sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/sheets"
)

func main() {
	format := flag.String("format", "csv", "output format: csv, json, or sheets")
	out := flag.String("out", "", "output file (default stdout; ignored for sheets)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	ctx := context.Background()
	txs, err := result.Repo.Load(ctx)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, *format, *out, txs); err != nil {
		logger.Error("Export failed", "error", err, "format", *format)
		os.Exit(1)
	}
	logger.Info("Export complete", "format", *format, "transactions", len(txs))
}

func run(ctx context.Context, format, out string, txs []core.Transaction) error {
	if format == "sheets" {
		exporter, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return err
		}
		return exporter.Export(ctx, txs)
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, txs)
	case "json":
		return export.WriteJSON(w, txs)
	default:
		return fmt.Errorf("unknown format %q: must be csv, json, or sheets", format)
	}
}
