package ingestion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/auctionreport/internal/domain/models"
)

var (
	tagPattern = regexp.MustCompile(`<.*?>`)
	hundred    = decimal.NewFromInt(100)

	// "1.234,56", "1234,56", "10,5"
	brDecimal = regexp.MustCompile(`^(\d{1,3}(\.\d{3})+|\d+),\d+$`)
	// "1.234.567"; a single dot group ("1.234") stays a decimal point
	brThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3}){2,}$`)
)

// Normalize converts one RawLot into a models.Lot. It is pure: the same input
// always yields the same output.
//
// Field mapping (API key → Lot field):
//
//	nu_lote                → Number (int, malformed → 0)
//	nm_status              → Status (trimmed, uppercased), Sold (== VENDIDO)
//	vl_avaliacao           → AppraisalValue (decimal, malformed/negative → 0)
//	vl_minimo              → MinimumBid
//	arrematacao.vl | vl    → WinningBid
//	nm_descricao_vistoria  → Description (tags stripped)
//	descricao              → Summary
//	nm_osa, tp_alienacao, buyer fields, nm_leilao → copied as text
func Normalize(raw models.RawLot) models.Lot {
	status := strings.ToUpper(raw.Status.String())
	minimum := parseMoney(raw.MinimumBid.String())
	winning := parseMoney(raw.WinningValue())

	return models.Lot{
		Number:         parseLotNumber(raw.LotNumber.String()),
		OSA:            raw.OSA.String(),
		Status:         status,
		Sold:           status == models.StatusSold,
		Description:    StripMarkup(string(raw.InspectionDescription)),
		Summary:        raw.Description.String(),
		AlienationType: raw.AlienationType.String(),
		AppraisalValue: parseMoney(raw.AppraisalValue.String()),
		MinimumBid:     minimum,
		WinningBid:     winning,
		Evolution:      Evolution(minimum, winning),
		BuyerName:      raw.Buyer(),
		BuyerState:     raw.State(),
		BuyerTaxID:     raw.TaxID(),
		AuctionName:    raw.AuctionName.String(),
	}
}

// NormalizeAll normalizes every lot, logging each one at debug level and
// warning about lot numbers that could not be parsed.
func NormalizeAll(log zerolog.Logger, raws []models.RawLot) []models.Lot {
	lots := make([]models.Lot, 0, len(raws))
	for _, raw := range raws {
		lot := Normalize(raw)
		if lot.Number == 0 && raw.LotNumber.String() != "0" {
			log.Warn().Str("nu_lote", string(raw.LotNumber)).Msg("invalid lot number, using 0")
		}
		log.Debug().
			Int("lot", lot.Number).
			Str("osa", lot.OSA).
			Str("status_raw", string(raw.Status)).
			Str("status", lot.Status).
			Str("winning_bid", lot.WinningBid.StringFixed(2)).
			Bool("sold", lot.Sold).
			Msg("lot normalized")
		lots = append(lots, lot)
	}
	return lots
}

// Evolution returns how much the winning bid grew over the minimum bid, in
// percent. It is zero unless both values are positive.
func Evolution(minimum, winning decimal.Decimal) decimal.Decimal {
	if !minimum.IsPositive() || !winning.IsPositive() {
		return decimal.Zero
	}
	return winning.Sub(minimum).Div(minimum).Mul(hundred)
}

// StripMarkup removes every tag-like substring ("<...>") from s.
func StripMarkup(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// parseMoney accepts "1234.56" and the Brazilian "1.234,56" / "1.234.567".
// Empty, malformed (including "1,234.56") and negative values become zero.
func parseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return decimal.Zero
	case brDecimal.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case brThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	case strings.Contains(s, ","):
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// parseLotNumber accepts integers and integral floats ("12", "12.0").
func parseLotNumber(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
