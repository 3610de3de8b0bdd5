package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/auctionreport/config"
	"github.com/guttosm/auctionreport/internal/domain/models"
	"github.com/guttosm/auctionreport/internal/format"
	"github.com/guttosm/auctionreport/internal/ingestion"
	"github.com/guttosm/auctionreport/internal/report"
	"github.com/guttosm/auctionreport/internal/service"
)

// Report formats.
const (
	FormatXLSX    = "xlsx"
	FormatDOCX    = "docx"
	FormatConsole = "console"
)

// LotSource is where raw lots come from.
type LotSource interface {
	FetchLots(ctx context.Context, auctionID string) ([]json.RawMessage, error)
	FetchAuctionName(ctx context.Context, auctionID string) (string, error)
}

// Options override the configured output for one run.
type Options struct {
	Format string // empty keeps REPORT_FORMAT
	Output string // empty derives the path from configuration
}

// ReportService generates one auction report per call.
type ReportService interface {
	Generate(ctx context.Context, auctionID string, opts Options) (string, error)
}

type reportService struct {
	cfg    config.Config
	src    LotSource
	log    zerolog.Logger
	stdout io.Writer
	locale format.Locale
	now    func() time.Time
}

// NewReportService returns a ReportService reading lots from src and writing
// with the Brazilian locale.
func NewReportService(cfg config.Config, src LotSource, log zerolog.Logger, stdout io.Writer) ReportService {
	return &reportService{cfg: cfg, src: src, log: log, stdout: stdout, locale: format.BRL, now: time.Now}
}

// Generate runs fetch → validate → normalize → aggregate → write for one auction
// and returns the path of the written file ("" for console output).
//
// Any failure aborts the run before an output file is created, except a
// failing write, which leaves no partial file behind.
func (s *reportService) Generate(ctx context.Context, auctionID string, opts Options) (string, error) {
	fmtName := opts.Format
	if fmtName == "" {
		fmtName = s.cfg.Report.Format
	}
	log := s.log.With().Str("auction_id", auctionID).Str("format", fmtName).Logger()
	log.Info().Msg("report started")

	items, err := s.src.FetchLots(ctx, auctionID)
	if err != nil {
		return "", fmt.Errorf("fetch lots: %w", err)
	}

	raws, err := ingestion.Validate(items, s.cfg.API.ValidateSchema)
	if err != nil {
		return "", fmt.Errorf("validate lots: %w", err)
	}
	lots := ingestion.NormalizeAll(log, raws)

	name := s.auctionName(ctx, log, auctionID, lots)
	rep := service.BuildReport(auctionID, name, lots, s.now())
	sum := rep.Summary
	log.Info().
		Str("auction_name", name).
		Int("total", sum.Total).
		Int("sold", sum.Sold).
		Int("unsold", sum.Unsold).
		Str("sold_percent", sum.SoldPercent.StringFixed(2)).
		Str("total_winning", sum.TotalWinning.StringFixed(2)).
		Msg("report summarized")

	path, err := s.write(fmtName, rep, opts.Output)
	if err != nil {
		return "", err
	}
	log.Info().Str("path", path).Msg("report written")
	return path, nil
}

// auctionName prefers the metadata endpoint, then the first lot carrying
// nm_leilao, then "LEILÃO <id>".
func (s *reportService) auctionName(ctx context.Context, log zerolog.Logger, auctionID string, lots []models.Lot) string {
	name, err := s.src.FetchAuctionName(ctx, auctionID)
	if err != nil {
		log.Warn().Err(err).Msg("auction metadata unavailable")
	}
	if name != "" {
		return name
	}
	for _, l := range lots {
		if l.AuctionName != "" {
			return l.AuctionName
		}
	}
	return "LEILÃO " + auctionID
}

func (s *reportService) write(fmtName string, rep models.Report, output string) (string, error) {
	switch fmtName {
	case FormatConsole:
		return "", report.WriteConsole(s.stdout, rep, s.locale)

	case FormatXLSX:
		path := output
		if path == "" {
			path = s.resolve(s.cfg.Report.OutputFile)
		}
		sheets := report.SheetNames{Lots: s.cfg.Report.LotsSheet, Summary: s.cfg.Report.SummarySheet}
		return path, report.Save(path, func(w io.Writer) error {
			return report.WriteXLSX(w, rep, sheets, s.locale)
		})

	case FormatDOCX:
		path := output
		if path == "" {
			path = s.resolve(report.DocumentName(rep.AuctionID))
		}
		return path, report.Save(path, func(w io.Writer) error {
			return report.WriteDOCX(w, rep, s.locale)
		})

	default:
		return "", fmt.Errorf("unknown report format %q", fmtName)
	}
}

func (s *reportService) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.cfg.Report.OutputDir, name)
}
