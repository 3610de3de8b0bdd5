package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/guttosm/auctionreport/internal/domain/models"
)

// requiredFields is the lot schema published by the auction API.
// With schema validation on, a lot missing any of them aborts the report.
var requiredFields = []string{
	"url_leiloeiro", "leilao_id", "nm_leilao", "dt_leilao", "tipo_leilao",
	"nm_leiloeiro", "lote_id", "nu_lote", "nm_lote", "descricao",
	"nm_descricao_vistoria", "nm_status", "vl_avaliacao", "vl_minimo",
	"nu_parcelas", "vl_comissao", "nu_comissao", "dt_lance",
	"nu_total_lance", "arrematacao", "tipo_arrematacao", "processo", "nm_osa",
}

// ValidationError describes why a fetched payload was rejected.
type ValidationError struct {
	Index   int      // position of the offending item
	Reason  string
	Missing []string // missing required keys, if any
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("lot %d: %s: %s", e.Index, e.Reason, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("lot %d: %s", e.Index, e.Reason)
}

// Validate decodes the fetched items into RawLots.
//
// It fails on:
//   - an item that is not a JSON object
//   - a missing required key, when requireFields is set
//
// It never repairs a payload: the first problem is returned and the caller
// aborts report generation.
func Validate(items []json.RawMessage, requireFields bool) ([]models.RawLot, error) {
	out := make([]models.RawLot, 0, len(items))
	for i, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, &ValidationError{Index: i, Reason: "item is not an object"}
		}

		if requireFields {
			var keys map[string]json.RawMessage
			if err := json.Unmarshal(trimmed, &keys); err != nil {
				return nil, &ValidationError{Index: i, Reason: "invalid object: " + err.Error()}
			}
			var missing []string
			for _, f := range requiredFields {
				if _, ok := keys[f]; !ok {
					missing = append(missing, f)
				}
			}
			if len(missing) > 0 {
				return nil, &ValidationError{Index: i, Reason: "missing required fields", Missing: missing}
			}
		}

		var lot models.RawLot
		if err := json.Unmarshal(trimmed, &lot); err != nil {
			return nil, &ValidationError{Index: i, Reason: "invalid object: " + err.Error()}
		}
		out = append(out, lot)
	}
	return out, nil
}
