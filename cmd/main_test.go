package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/auctionreport/internal/testutil"
)

func setEnv(t *testing.T, api *testutil.FakeAPI, dir string) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("API_URL", api.LotsURL())
	t.Setenv("API_AUCTION_URL", api.AuctionURL())
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("REPORT_FORMAT", "xlsx")
	t.Setenv("REPORT_OUTPUT_DIR", dir)
	t.Setenv("REPORT_OUTPUT_FILE", "relatorio.xlsx")
	t.Setenv("LOG_FILE", filepath.Join(dir, "run.log"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"1", "2"}, {" "}} {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), args, &stdout, &stderr)
		assert.Equal(t, 1, code, "args %v", args)
		assert.Contains(t, stdout.String(), "auctionreport <auction_id>")
		assert.Empty(t, stderr.String())
	}
}

func TestRun_WritesSpreadsheet(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Sold = testutil.Reply{Status: 200, Body: `[{"nu_lote":"1","nm_status":"VENDIDO","vl_minimo":"10","arrematacao":{"vl":"15"}}]`}
	dir := t.TempDir()
	setEnv(t, api, dir)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"15324"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "relatorio.xlsx")

	_, err := os.Stat(filepath.Join(dir, "relatorio.xlsx"))
	assert.NoError(t, err)
	logData, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(logData), `"level":"info"`)
}

func TestRun_FetchFailure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Sold = testutil.Reply{Status: 500, Body: "x"}
	api.Unsold = testutil.Reply{Status: 500, Body: "x"}
	dir := t.TempDir()
	setEnv(t, api, dir)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"15324", "--format", "docx"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "both lot requests failed")

	_, err := os.Stat(filepath.Join(dir, "relatorio_leilao_15324.docx"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_NoLotsAndBadFormat(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	dir := t.TempDir()
	setEnv(t, api, dir)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "no lots found")

	stderr.Reset()
	assert.Equal(t, 1, run(context.Background(), []string{"1", "--format", "pdf"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid --format")
}

func TestRun_Interrupted(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	dir := t.TempDir()
	setEnv(t, api, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(ctx, []string{"1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "interrupted")
	assert.NotContains(t, stderr.String(), "both lot requests failed")
}
