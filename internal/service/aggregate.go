package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/auctionreport/internal/domain/models"
)

var hundred = decimal.NewFromInt(100)

// SortLots orders lots by lot number, ascending and numeric. Lots sharing a
// number keep their input order.
func SortLots(lots []models.Lot) {
	sort.SliceStable(lots, func(i, j int) bool { return lots[i].Number < lots[j].Number })
}

// Summarize computes counts, percentages and winning-bid totals.
//
// Behavior:
//   - Every lot is either sold or unsold, never both.
//   - TotalWinning sums WinningBid over sold lots only; an unsold lot
//     carrying a winning value contributes nothing.
//   - Percentages are 0 for an empty set.
//   - Lowest/Highest resolve ties to the lowest lot number.
func Summarize(lots []models.Lot) models.Summary {
	s := models.Summary{
		Total:         len(lots),
		SoldPercent:   decimal.Zero,
		UnsoldPercent: decimal.Zero,
		TotalWinning:  decimal.Zero,
	}

	for _, lot := range lots {
		if !lot.Sold {
			s.Unsold++
			continue
		}
		s.Sold++
		s.TotalWinning = s.TotalWinning.Add(lot.WinningBid)

		if s.Lowest == nil || better(lot, s.Lowest, -1) {
			s.Lowest = &models.LotValue{Number: lot.Number, Value: lot.WinningBid}
		}
		if s.Highest == nil || better(lot, s.Highest, 1) {
			s.Highest = &models.LotValue{Number: lot.Number, Value: lot.WinningBid}
		}
	}

	if s.Total > 0 {
		total := decimal.NewFromInt(int64(s.Total))
		s.SoldPercent = decimal.NewFromInt(int64(s.Sold)).Div(total).Mul(hundred)
		s.UnsoldPercent = decimal.NewFromInt(int64(s.Unsold)).Div(total).Mul(hundred)
	}
	return s
}

// better reports whether lot beats cur in direction dir (-1 lower, 1 higher).
func better(lot models.Lot, cur *models.LotValue, dir int) bool {
	c := lot.WinningBid.Cmp(cur.Value)
	if c == 0 {
		return lot.Number < cur.Number
	}
	return c == dir
}

// BuildReport sorts lots in place and assembles the report for one auction.
func BuildReport(auctionID, auctionName string, lots []models.Lot, generatedAt time.Time) models.Report {
	SortLots(lots)
	return models.Report{
		AuctionID:   auctionID,
		AuctionName: auctionName,
		Lots:        lots,
		Summary:     Summarize(lots),
		GeneratedAt: generatedAt,
	}
}
