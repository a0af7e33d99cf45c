package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/agrotrade/internal/config"
	"github.com/Veraticus/agrotrade/internal/query"
	"github.com/Veraticus/agrotrade/internal/sheets"
	"github.com/Veraticus/agrotrade/internal/workflow"
)

// newTransport is swapped out in tests.
var newTransport = sheets.NewTransport

// app is the wired data layer one command runs against.
type app struct {
	query  *query.Service
	writer *workflow.Writer
	config *sheets.Config
}

// initApp loads the sheets configuration and builds the read and write
// services on top of it. Reads retry with the configured policy; writes
// never do.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load sheets config: %w", err)
	}

	logger := slog.Default()
	transport, err := newTransport(ctx, *cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transport: %w", err)
	}

	tables := sheets.NewTables(*cfg, transport, logger)

	opts := []query.Option{query.WithLogger(logger)}
	if cfg.RetryAttempts > 0 {
		opts = append(opts, query.WithRetry(cfg.RetryOptions()))
	}

	return &app{
		query: query.NewService(tables, opts...),
		writer: workflow.NewWriter(tables,
			workflow.WithLogger(logger),
			workflow.WithSerializedWrites(cfg.SerializeWrites),
		),
		config: cfg,
	}, nil
}
