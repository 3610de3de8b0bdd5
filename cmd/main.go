package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guttosm/auctionreport/config"
	"github.com/guttosm/auctionreport/internal/app"
	"github.com/guttosm/auctionreport/internal/auctionapi"
	"github.com/guttosm/auctionreport/internal/logger"
	"github.com/guttosm/auctionreport/internal/report"
)

var errUsage = errors.New("expected exactly one auction id")

// newRootCmd builds the auctionreport command.
//
// Flags:
//   - --format: xlsx, docx or console. Defaults to REPORT_FORMAT.
//   - --output: output file path. Defaults to REPORT_OUTPUT_DIR/REPORT_OUTPUT_FILE
//     for spreadsheets and REPORT_OUTPUT_DIR/relatorio_leilao_<id>.docx for documents.
func newRootCmd(stdout io.Writer) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "auctionreport <auction_id>",
		Short:         "Generates sales reports for an auction from the auction house API.",
		Example:       "  auctionreport 15324\n  auctionreport 15324 --format docx",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				_ = cmd.Usage()
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), stdout, strings.TrimSpace(args[0]), opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "report format: xlsx, docx or console")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	return cmd
}

func generate(ctx context.Context, stdout io.Writer, auctionID string, opts app.Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	opts.Format = strings.ToLower(strings.TrimSpace(opts.Format))
	switch opts.Format {
	case "", app.FormatXLSX, app.FormatDOCX, app.FormatConsole:
	default:
		return fmt.Errorf("invalid --format %q: want xlsx, docx or console", opts.Format)
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	svc, err := app.InitializeApp(cfg, log, stdout)
	if err != nil {
		log.Error().Err(err).Msg("app init error")
		return err
	}

	path, err := svc.Generate(ctx, auctionID, opts)
	if err != nil {
		log.Error().Err(err).Str("auction_id", auctionID).Msg("report failed")
		return err
	}
	if path != "" {
		_, _ = fmt.Fprintf(stdout, "report written to %s\n", path)
	}
	return nil
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	if args == nil {
		args = []string{} // a nil slice makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
	case errors.Is(err, report.ErrOutputLocked):
		_, _ = fmt.Fprintf(stderr, "error: %v\nclose the file in any other program and try again\n", err)
	case errors.Is(err, context.Canceled):
		_, _ = fmt.Fprintln(stderr, "interrupted")
	case errors.Is(err, auctionapi.ErrNoLots):
		_, _ = fmt.Fprintln(stderr, "no lots found for this auction")
	default:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return 1
}

// main is the entry point of auctionreport.
//
// Usage:
//
//	auctionreport <auction_id> [--format xlsx|docx|console] [--output path]
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
