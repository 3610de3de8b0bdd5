package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the report run,
// such as the remote auction API, output files and logging.
//
// Example ENV equivalent:
//
//	API_URL=https://api.example.com/leiloes/buscar-lotes
//	API_AUCTIONEER_URL=www.giordanoleiloes.com.br
//	API_TIMEOUT=30s
//	REPORT_FORMAT=xlsx
//	REPORT_OUTPUT_FILE=relatorio_leiloes.xlsx
//	LOG_LEVEL=info
type Config struct {
	API    APIConfig    // Remote auction API settings
	Report ReportConfig // Output document settings
	Log    LogConfig    // Logger settings
}

// APIConfig defines how the lot fetcher talks to the auction house API.
//
// Fields:
//   - URL: endpoint returning lots (form POST).
//   - AuctionURL: endpoint returning auction metadata (nm_leilao).
//   - AuctioneerURL: value sent as url_leiloeiro on every request.
//   - Headers: fixed request headers; defaults are merged underneath.
//   - Timeout: per-request ceiling.
//   - InsecureSkipVerify: disables TLS verification (test environments).
//   - ValidateSchema: enables the required-field check on every lot.
type APIConfig struct {
	URL                string
	AuctionURL         string
	AuctioneerURL      string
	Headers            map[string]string
	Timeout            time.Duration
	InsecureSkipVerify bool
	ValidateSchema     bool
}

// ReportConfig controls which document is produced and where it goes.
type ReportConfig struct {
	Format       string // xlsx, docx or console
	OutputFile   string // spreadsheet path
	OutputDir    string // directory for relatorio_leilao_<id>.docx
	LotsSheet    string
	SummarySheet string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
	File   string // empty disables the log file
}

// LoadConfig builds a Config from .env (if present) and environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all optional fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Derives API_AUCTION_URL from API_URL when not set.
//   - Calls validateConfig() to ensure required fields are present.
func LoadConfig() (Config, error) {
	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("API_AUCTIONEER_URL", "www.giordanoleiloes.com.br")
	v.SetDefault("API_TIMEOUT", 30*time.Second)
	v.SetDefault("API_INSECURE_SKIP_VERIFY", false)
	v.SetDefault("API_VALIDATE_SCHEMA", false)

	v.SetDefault("REPORT_FORMAT", "xlsx")
	v.SetDefault("REPORT_OUTPUT_FILE", "relatorio_leiloes.xlsx")
	v.SetDefault("REPORT_OUTPUT_DIR", ".")
	v.SetDefault("REPORT_SHEET_LOTS", "lotes")
	v.SetDefault("REPORT_SHEET_SUMMARY", "resumo")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("LOG_FILE", "leiloes.log")

	v.AutomaticEnv()

	cfg := Config{
		API: APIConfig{
			URL:                strings.TrimSpace(v.GetString("API_URL")),
			AuctionURL:         strings.TrimSpace(v.GetString("API_AUCTION_URL")),
			AuctioneerURL:      v.GetString("API_AUCTIONEER_URL"),
			Headers:            ParseHeaders(v.GetString("API_HEADERS")),
			Timeout:            v.GetDuration("API_TIMEOUT"),
			InsecureSkipVerify: v.GetBool("API_INSECURE_SKIP_VERIFY"),
			ValidateSchema:     v.GetBool("API_VALIDATE_SCHEMA"),
		},
		Report: ReportConfig{
			Format:       strings.ToLower(v.GetString("REPORT_FORMAT")),
			OutputFile:   v.GetString("REPORT_OUTPUT_FILE"),
			OutputDir:    v.GetString("REPORT_OUTPUT_DIR"),
			LotsSheet:    v.GetString("REPORT_SHEET_LOTS"),
			SummarySheet: v.GetString("REPORT_SHEET_SUMMARY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if cfg.API.AuctionURL == "" {
		cfg.API.AuctionURL = strings.Replace(cfg.API.URL, "buscar-lotes", "buscar-leilao", 1)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseHeaders reads "Key: Value; Other: Value" into a header map keyed by
// canonical header name ("content-type" → "Content-Type"). Entries without a
// colon are ignored; a repeated key keeps the last value.
func ParseHeaders(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ";") {
		k, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[http.CanonicalHeaderKey(k)] = strings.TrimSpace(val)
	}
	return out
}

// validateConfig ensures required variables are present.
//
// Behavior:
//   - Checks each critical field of cfg.
//   - Collects missing or invalid ones in a slice.
//   - Returns a single error naming all of them.
func validateConfig(cfg Config) error {
	var missing []string

	if cfg.API.URL == "" {
		missing = append(missing, "API_URL")
	}
	if cfg.API.AuctioneerURL == "" {
		missing = append(missing, "API_AUCTIONEER_URL")
	}
	if cfg.API.Timeout <= 0 {
		missing = append(missing, "API_TIMEOUT")
	}
	if cfg.Report.LotsSheet == "" {
		missing = append(missing, "REPORT_SHEET_LOTS")
	}
	if cfg.Report.SummarySheet == "" || strings.EqualFold(cfg.Report.SummarySheet, cfg.Report.LotsSheet) {
		missing = append(missing, "REPORT_SHEET_SUMMARY")
	}
	switch cfg.Report.Format {
	case "xlsx", "docx", "console":
	default:
		missing = append(missing, "REPORT_FORMAT")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid configuration: %v", missing)
	}
	return nil
}
