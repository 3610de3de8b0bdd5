package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"API_URL", "API_AUCTION_URL", "API_AUCTIONEER_URL", "API_HEADERS", "API_TIMEOUT",
		"API_INSECURE_SKIP_VERIFY", "API_VALIDATE_SCHEMA", "REPORT_FORMAT", "REPORT_OUTPUT_FILE",
		"REPORT_OUTPUT_DIR", "REPORT_SHEET_LOTS", "REPORT_SHEET_SUMMARY", "LOG_LEVEL", "LOG_PRETTY", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

// TestLoadConfig_Defaults verifies that defaults are loaded and the auction URL is derived.
func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir()) // no .env
	t.Setenv("API_URL", "https://api.example.com/leiloes/buscar-lotes")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.API.AuctionURL != "https://api.example.com/leiloes/buscar-leilao" {
		t.Fatalf("derived auction url = %q", cfg.API.AuctionURL)
	}
	if cfg.API.AuctioneerURL != "www.giordanoleiloes.com.br" || cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected api defaults: %+v", cfg.API)
	}
	if cfg.API.InsecureSkipVerify || cfg.API.ValidateSchema {
		t.Fatalf("tls/schema toggles should default to false: %+v", cfg.API)
	}
	if cfg.Report.Format != "xlsx" || cfg.Report.LotsSheet != "lotes" || cfg.Report.SummarySheet != "resumo" {
		t.Fatalf("unexpected report defaults: %+v", cfg.Report)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "leiloes.log" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("API_URL", "http://localhost/lotes")
	t.Setenv("API_AUCTION_URL", "http://localhost/leilao")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("API_HEADERS", "Accept: application/json; X-Token: abc")
	t.Setenv("REPORT_FORMAT", "DOCX")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.AuctionURL != "http://localhost/leilao" {
		t.Fatalf("auction url = %q", cfg.API.AuctionURL)
	}
	if cfg.API.Timeout != 5*time.Second || !cfg.API.InsecureSkipVerify {
		t.Fatalf("unexpected api: %+v", cfg.API)
	}
	if cfg.API.Headers["X-Token"] != "abc" || cfg.API.Headers["Accept"] != "application/json" {
		t.Fatalf("headers = %v", cfg.API.Headers)
	}
	if cfg.Report.Format != "docx" {
		t.Fatalf("format = %q", cfg.Report.Format)
	}
}

func TestLoadConfig_MissingURL(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "API_URL") {
		t.Fatalf("expected API_URL error, got %v", err)
	}
}

func TestValidateConfig_ReportsEverything(t *testing.T) {
	err := validateConfig(Config{Report: ReportConfig{Format: "pdf"}})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, k := range []string{"API_URL", "API_AUCTIONEER_URL", "API_TIMEOUT", "REPORT_SHEET_LOTS", "REPORT_SHEET_SUMMARY", "REPORT_FORMAT"} {
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("error %q does not mention %s", err, k)
		}
	}
}

func TestValidateConfig_SheetNamesMustDiffer(t *testing.T) {
	cfg := Config{
		API:    APIConfig{URL: "http://x", AuctioneerURL: "y", Timeout: time.Second},
		Report: ReportConfig{Format: "xlsx", LotsSheet: "lotes", SummarySheet: "LOTES"},
	}
	err := validateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "REPORT_SHEET_SUMMARY") {
		t.Fatalf("expected REPORT_SHEET_SUMMARY error, got %v", err)
	}
	cfg.Report.SummarySheet = "resumo"
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		in   string
		want map[string]string
	}{
		{"", map[string]string{}},
		{"Accept: */*", map[string]string{"Accept": "*/*"}},
		{" A : 1 ;B:2;garbage; :x", map[string]string{"A": "1", "B": "2"}},
		{"content-type: text/plain; x-api-key: k", map[string]string{"Content-Type": "text/plain", "X-Api-Key": "k"}},
		{"accept: a; ACCEPT: b", map[string]string{"Accept": "b"}},
	}
	for _, c := range cases {
		got := ParseHeaders(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("ParseHeaders(%q)=%v, want %v", c.in, got, c.want)
		}
		for k, v := range c.want {
			if got[k] != v {
				t.Fatalf("ParseHeaders(%q)[%q]=%q, want %q", c.in, k, got[k], v)
			}
		}
	}
}
