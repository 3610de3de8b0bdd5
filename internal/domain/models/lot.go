package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusSold is the only status treated as sold. Comparison happens after
// trimming and uppercasing the API value.
const StatusSold = "VENDIDO"

// Lot is the canonical representation of one auction lot.
//
// Monetary fields are never negative. Evolution is zero unless both
// MinimumBid and WinningBid are positive.
type Lot struct {
	Number         int
	OSA            string
	Status         string
	Sold           bool
	Description    string // inspection description without markup
	Summary        string // short "descricao" field
	AlienationType string
	AppraisalValue decimal.Decimal
	MinimumBid     decimal.Decimal
	WinningBid     decimal.Decimal
	Evolution      decimal.Decimal // percent
	BuyerName      string
	BuyerState     string
	BuyerTaxID     string
	AuctionName    string
}

// LotValue points at one lot and its winning bid.
type LotValue struct {
	Number int
	Value  decimal.Decimal
}

// Summary aggregates a set of lots.
//
// Fields:
//   - Total, Sold, Unsold: counts; Sold + Unsold == Total.
//   - SoldPercent, UnsoldPercent: 0 when Total is 0.
//   - TotalWinning: sum of WinningBid over sold lots only.
//   - Lowest, Highest: sold lots with the smallest and largest winning bid;
//     nil when nothing was sold.
type Summary struct {
	Total         int
	Sold          int
	Unsold        int
	SoldPercent   decimal.Decimal
	UnsoldPercent decimal.Decimal
	TotalWinning  decimal.Decimal
	Lowest        *LotValue
	Highest       *LotValue
}

// Report is everything a report writer needs for one auction.
type Report struct {
	AuctionID   string
	AuctionName string
	Lots        []Lot // sorted by Number
	Summary     Summary
	GeneratedAt time.Time
}
