package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/guttosm/auctionreport/internal/domain/models"
	"github.com/guttosm/auctionreport/internal/format"
)

// WriteConsole prints the lot table and the auction summary.
func WriteConsole(w io.Writer, r models.Report, loc format.Locale) error {
	lots := table.NewWriter()
	lots.SetOutputMirror(w)
	lots.SetStyle(table.StyleRounded)
	lots.SetTitle(r.AuctionName)
	lots.AppendHeader(table.Row{"Lote", "Status", "OSA", "Valor avaliação", "Valor mínimo", "Valor arrematado"})
	for _, lot := range r.Lots {
		won := ""
		if lot.Sold {
			won = loc.Money(lot.WinningBid)
		}
		lots.AppendRow(table.Row{lot.Number, lot.Status, lot.OSA, loc.Money(lot.AppraisalValue), loc.Money(lot.MinimumBid), won})
	}
	lots.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	lots.Render()

	s := r.Summary
	sum := table.NewWriter()
	sum.SetOutputMirror(w)
	sum.SetStyle(table.StyleRounded)
	sum.SetTitle("RESUMO DO LEILÃO")
	sum.AppendRows([]table.Row{
		{"Total de lotes", s.Total},
		{"Lotes vendidos", s.Sold},
		{"Lotes não vendidos", s.Unsold},
		{"Valor total arrematado", loc.Money(s.TotalWinning)},
	})
	if s.Lowest != nil && s.Highest != nil {
		sum.AppendRows([]table.Row{
			{"Menor valor arrematado", lotValue(s.Lowest, loc)},
			{"Maior valor arrematado", lotValue(s.Highest, loc)},
		})
	}
	sum.Render()

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write console report: %w", err)
	}
	return nil
}

func lotValue(v *models.LotValue, loc format.Locale) string {
	return loc.Money(v.Value) + " (Lote " + strconv.Itoa(v.Number) + ")"
}
