package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/guttosm/auctionreport/config"
	"github.com/guttosm/auctionreport/internal/auctionapi"
)

// clientFactory is an indirection for building the API client; tests can override it.
var clientFactory = func(cfg config.APIConfig, log zerolog.Logger) (LotSource, error) {
	return auctionapi.NewClient(cfg, log)
}

// InitializeApp wires the report service from configuration.
//
// Responsibilities:
//   - Builds the auction API client (headers, timeout, TLS, middlewares).
//   - Creates the report service that runs the fetch → write pipeline.
//
// Returns:
//   - ReportService: ready to generate reports.
//   - error: any initialization error that occurred.
func InitializeApp(cfg config.Config, log zerolog.Logger, stdout io.Writer) (ReportService, error) {
	src, err := clientFactory(cfg.API, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auction api client: %w", err)
	}
	return NewReportService(cfg, src, log, stdout), nil
}
