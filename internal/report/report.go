// Package report renders a models.Report as a spreadsheet, a word-processor
// document or a console table, and saves files without leaving partial output.
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/guttosm/auctionreport/internal/domain/models"
	"github.com/guttosm/auctionreport/internal/format"
)

// ErrOutputLocked means the destination exists but cannot be replaced, usually
// because another program holds it open.
var ErrOutputLocked = errors.New("report: output file is locked or not writable")

// Save writes a file through fn into a temporary sibling of path and renames it
// into place. On any failure the temporary file is removed and path is left
// untouched.
//
// Returns:
//   - ErrOutputLocked (wrapped) when the filesystem refuses access.
//   - The wrapped error from fn or the filesystem otherwise.
func Save(path string, fn func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return classify(path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return classify(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return classify(path, err)
	}
	return nil
}

func classify(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %v", ErrOutputLocked, path, err)
	}
	return fmt.Errorf("write %s: %w", path, err)
}

// DocumentName is the file name used for the document report of an auction.
func DocumentName(auctionID string) string {
	return "relatorio_leilao_" + auctionID + ".docx"
}

// lotHeaders are the spreadsheet detail columns.
var lotHeaders = []string{
	"N° Lote",
	"OSA",
	"Status",
	"Descrição do bem",
	"Valor avaliado",
	"Lance inicial",
	"Valor arrematado",
	"Percentual de evolução (%)",
}

func lotRow(l models.Lot, loc format.Locale) []interface{} {
	return []interface{}{
		l.Number,
		l.OSA,
		l.Status,
		l.Description,
		loc.Money(l.AppraisalValue),
		loc.Money(l.MinimumBid),
		loc.Money(l.WinningBid),
		loc.Percent(l.Evolution),
	}
}

var summaryHeaders = []string{"QUADRO RESUMO", "Quantidade"}

func summaryRows(s models.Summary, loc format.Locale) [][]interface{} {
	return [][]interface{}{
		{"TOTAL DE LOTES", s.Total},
		{"TOTAL DE LOTES ARREMATADOS", s.Sold},
		{"PERCENTUAL DE LOTES ARREMATADOS", loc.Percent(s.SoldPercent)},
		{"TOTAL DE LOTES NÃO ARREMATADOS", s.Unsold},
		{"PERCENTUAL DE LOTES NÃO ARREMATADOS", loc.Percent(s.UnsoldPercent)},
		{"VALOR TOTAL ARREMATADO", loc.Money(s.TotalWinning)},
	}
}

// documentHeaders are the document table columns.
var documentHeaders = []string{
	"OSA",
	"Nº Lote",
	"Tipo de Alienação",
	"Descrição",
	"Descrição da Vistoria",
	"Status",
	"Usuário",
	"Estado",
	"CPF/CNPJ",
	"Valor avaliado",
	"Lance inicial",
	"Valor arrematado",
	"Percentual de evolução (%)",
}

func documentRow(l models.Lot, loc format.Locale) []string {
	return []string{
		l.OSA,
		strconv.Itoa(l.Number),
		l.AlienationType,
		l.Summary,
		l.Description,
		l.Status,
		l.BuyerName,
		l.BuyerState,
		l.BuyerTaxID,
		loc.Money(l.AppraisalValue),
		loc.Money(l.MinimumBid),
		loc.Money(l.WinningBid),
		loc.Percent(l.Evolution),
	}
}
