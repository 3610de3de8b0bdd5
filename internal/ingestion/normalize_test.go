package ingestion

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/auctionreport/internal/domain/models"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func rawLot(t *testing.T, body string) models.RawLot {
	t.Helper()
	var r models.RawLot
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return r
}

func TestNormalize_SoldLot(t *testing.T) {
	raw := rawLot(t, `{
		"nu_lote": "2", "nm_status": "Vendido", "nm_osa": "OSA-9",
		"vl_avaliacao": "100", "vl_minimo": "50", "arrematacao": {"vl": "80", "nm_usuario": "Ana"},
		"nm_descricao_vistoria": "<p>Carro <b>bom</b></p>", "descricao": "Veículo",
		"tp_alienacao": "Leilão", "nm_estado": "RS", "nm_cpfoucnpj": "000", "nm_leilao": "Leilão 1"
	}`)

	got := Normalize(raw)
	want := models.Lot{
		Number:         2,
		OSA:            "OSA-9",
		Status:         "VENDIDO",
		Sold:           true,
		Description:    "Carro bom",
		Summary:        "Veículo",
		AlienationType: "Leilão",
		AppraisalValue: decimal.NewFromInt(100),
		MinimumBid:     decimal.NewFromInt(50),
		WinningBid:     decimal.NewFromInt(80),
		Evolution:      decimal.NewFromInt(60),
		BuyerName:      "Ana",
		BuyerState:     "RS",
		BuyerTaxID:     "000",
		AuctionName:    "Leilão 1",
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_StatusMatching(t *testing.T) {
	cases := []struct {
		status string
		sold   bool
	}{
		{"Vendido", true},
		{"  vendido  ", true},
		{"VENDIDO", true},
		{"Não Vendido", false},
		{"N/A", false},
		{"", false},
		{"VENDIDOS", false},
	}
	for _, c := range cases {
		raw := models.RawLot{Status: models.Text(c.status)}
		if got := Normalize(raw).Sold; got != c.sold {
			t.Fatalf("status %q: sold=%v, want %v", c.status, got, c.sold)
		}
	}
}

func TestNormalize_MoneyDefaults(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"abc", "0"},
		{"-10", "0"},
		{"1234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"10,5", "10.5"},
		{" 42 ", "42"},
		{"1234,56", "1234.56"},
		{"1.234.567", "1234567"},
		{"1.234.567,89", "1234567.89"},
		{"1.234", "1.234"},
		{"1,234.56", "0"},
		{"1,234", "1.234"},
		{"12.34,5", "0"},
		{"1,2,3", "0"},
		{"-1.234,56", "0"},
	}
	for _, c := range cases {
		got := Normalize(models.RawLot{AppraisalValue: models.Text(c.in)}).AppraisalValue
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Fatalf("parse %q = %s, want %s", c.in, got, c.want)
		}
		if got.IsNegative() {
			t.Fatalf("parse %q produced negative value", c.in)
		}
	}
}

func TestEvolution_Guard(t *testing.T) {
	d := decimal.NewFromInt
	cases := []struct {
		name             string
		minimum, winning decimal.Decimal
		want             decimal.Decimal
	}{
		{"both positive", d(50), d(80), d(60)},
		{"loss", d(100), d(75), d(-25)},
		{"zero minimum", d(0), d(80), d(0)},
		{"zero winning", d(50), d(0), d(0)},
		{"both zero", d(0), d(0), d(0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Evolution(c.minimum, c.winning); !got.Equal(c.want) {
				t.Fatalf("Evolution(%s, %s)=%s, want %s", c.minimum, c.winning, got, c.want)
			}
		})
	}
}

func TestNormalize_LotNumber(t *testing.T) {
	cases := map[string]int{"12": 12, "12.0": 12, " 7 ": 7, "abc": 0, "": 0, "1.5": 0}
	for in, want := range cases {
		if got := Normalize(models.RawLot{LotNumber: models.Text(in)}).Number; got != want {
			t.Fatalf("lot number %q = %d, want %d", in, got, want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := rawLot(t, `{"nu_lote": 3, "nm_status": "vendido", "vl_minimo": "33.33", "arrematacao": {"vl": "100"}, "nm_descricao_vistoria": "<i>x</i>"}`)
	first := Normalize(raw)
	second := Normalize(raw)
	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Fatalf("Normalize not idempotent:\n%s", diff)
	}
	if first.Evolution.String() != second.Evolution.String() {
		t.Fatalf("evolution differs: %s vs %s", first.Evolution, second.Evolution)
	}
}

func TestStripMarkup(t *testing.T) {
	cases := map[string]string{
		"<p>Texto</p>":               "Texto",
		"sem tags":                   "sem tags",
		"a <br/> b":                  "a  b",
		"<b>x</b><i>y</i>":           "xy",
		"2 < 3 e 4 > 1":              "2  1",
		"":                           "",
		"<span class=\"a\">z</span>": "z",
	}
	for in, want := range cases {
		if got := StripMarkup(in); got != want {
			t.Fatalf("StripMarkup(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestNormalizeAll_LogsInvalidNumber(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	lots := NormalizeAll(log, []models.RawLot{
		{LotNumber: "1", Status: "Vendido"},
		{LotNumber: "x"},
	})
	if len(lots) != 2 {
		t.Fatalf("want 2 lots, got %d", len(lots))
	}
	out := buf.String()
	if !strings.Contains(out, "invalid lot number") {
		t.Fatalf("missing warning in %q", out)
	}
	if strings.Count(out, "lot normalized") != 2 {
		t.Fatalf("expected one debug line per lot: %q", out)
	}
}
