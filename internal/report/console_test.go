package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/auctionreport/internal/format"
)

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleReport(), format.BRL))
	out := buf.String()

	assert.Contains(t, out, "LEILÃO DETRAN 01/2025")
	assert.Contains(t, out, "RESUMO DO LEILÃO")
	assert.Contains(t, out, "R$ 1.234,50")
	assert.Contains(t, out, "R$ 80,00 (Lote 2)")
	assert.Contains(t, out, "Menor valor arrematado")
}

func TestWriteConsole_NothingSold(t *testing.T) {
	r := sampleReport()
	r.Lots = r.Lots[:1]
	r.Summary.Sold, r.Summary.Lowest, r.Summary.Highest = 0, nil, nil

	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, r, format.BRL))
	assert.NotContains(t, buf.String(), "Menor valor arrematado")
}
