package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a loosely typed scalar from the auction API.
//
// The API is not consistent about types: the same field may arrive as a JSON
// string, number, bool or null depending on the lot. Text keeps the textual
// form of any scalar and decodes objects and arrays to "", so unmarshalling a
// lot never fails on a single field.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[', 'n': // object, array, null
		*t = ""
	default: // number, true, false
		*t = Text(b)
	}
	return nil
}

// String returns the trimmed value.
func (t Text) String() string { return strings.TrimSpace(string(t)) }

// WinningBid is the "arrematacao" sub-object of a sold lot.
//
// Unsold lots send it as [], false or null; those decode to the zero value.
type WinningBid struct {
	Value      Text `json:"vl"`
	BuyerName  Text `json:"nm_usuario"`
	BuyerState Text `json:"nm_estado"`
	BuyerTaxID Text `json:"nm_cpfoucnpj"`
	BidDate    Text `json:"dt_lance"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *WinningBid) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*w = WinningBid{}
		return nil
	}
	type plain WinningBid
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*w = WinningBid(p)
	return nil
}

// RawLot is one lot record as returned by the auction API.
//
// Every field is optional. Lookups that have a fallback are exposed as methods:
//   - WinningValue: arrematacao.vl, then top-level vl.
//   - Buyer, State, TaxID: top-level field, then the same key in arrematacao.
type RawLot struct {
	AuctioneerURL         Text       `json:"url_leiloeiro"`
	AuctionID             Text       `json:"leilao_id"`
	AuctionName           Text       `json:"nm_leilao"`
	AuctionDate           Text       `json:"dt_leilao"`
	AuctionType           Text       `json:"tipo_leilao"`
	AuctioneerName        Text       `json:"nm_leiloeiro"`
	LotID                 Text       `json:"lote_id"`
	LotNumber             Text       `json:"nu_lote"`
	LotName               Text       `json:"nm_lote"`
	Description           Text       `json:"descricao"`
	InspectionDescription Text       `json:"nm_descricao_vistoria"`
	Status                Text       `json:"nm_status"`
	AppraisalValue        Text       `json:"vl_avaliacao"`
	MinimumBid            Text       `json:"vl_minimo"`
	Installments          Text       `json:"nu_parcelas"`
	CommissionValue       Text       `json:"vl_comissao"`
	CommissionPercent     Text       `json:"nu_comissao"`
	BidDate               Text       `json:"dt_lance"`
	TotalBids             Text       `json:"nu_total_lance"`
	Winning               WinningBid `json:"arrematacao"`
	WinningType           Text       `json:"tipo_arrematacao"`
	Process               Text       `json:"processo"`
	OSA                   Text       `json:"nm_osa"`
	AlienationType        Text       `json:"tp_alienacao"`
	BuyerName             Text       `json:"nm_usuario"`
	BuyerState            Text       `json:"nm_estado"`
	BuyerTaxID            Text       `json:"nm_cpfoucnpj"`
	Value                 Text       `json:"vl"`
}

// WinningValue returns the raw winning bid amount.
func (r RawLot) WinningValue() string {
	return firstNonEmpty(r.Winning.Value, r.Value)
}

// Buyer returns the raw winning bidder name.
func (r RawLot) Buyer() string {
	return firstNonEmpty(r.BuyerName, r.Winning.BuyerName)
}

// State returns the raw winning bidder state (UF).
func (r RawLot) State() string {
	return firstNonEmpty(r.BuyerState, r.Winning.BuyerState)
}

// TaxID returns the raw winning bidder CPF/CNPJ.
func (r RawLot) TaxID() string {
	return firstNonEmpty(r.BuyerTaxID, r.Winning.BuyerTaxID)
}

func firstNonEmpty(vals ...Text) string {
	for _, v := range vals {
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}
