package domain

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceTrendPoint is one monthly price observation for a bean. The API sends
// a subset of the bean record; only the keying fields and prices are kept.
type PriceTrendPoint struct {
	Name       string              `json:"name"`
	Provider   string              `json:"provider,omitempty"`
	Grade      string              `json:"grade,omitempty"`
	DataYear   int                 `json:"data_year"`
	DataMonth  int                 `json:"data_month"`
	PricePerKg decimal.NullDecimal `json:"price_per_kg"`

	hasYear  bool
	hasMonth bool
}

type rawTrendPoint struct {
	Name       string          `json:"name"`
	Provider   string          `json:"provider"`
	Grade      string          `json:"grade"`
	DataYear   json.RawMessage `json:"data_year"`
	DataMonth  json.RawMessage `json:"data_month"`
	PricePerKg json.RawMessage `json:"price_per_kg"`
}

// UnmarshalJSON keeps track of which keys were present. Year and month count
// only when they are JSON integers, and a price only when it is a JSON
// number; anything else is treated as absent so the point is dropped rather
// than failing the whole series.
func (p *PriceTrendPoint) UnmarshalJSON(data []byte) error {
	var raw rawTrendPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = PriceTrendPoint{
		Name:     raw.Name,
		Provider: raw.Provider,
		Grade:    raw.Grade,
	}
	p.DataYear, p.hasYear = jsonInt(raw.DataYear)
	p.DataMonth, p.hasMonth = jsonInt(raw.DataMonth)
	if isJSONNumber(raw.PricePerKg) {
		price, err := decimal.NewFromString(string(raw.PricePerKg))
		if err == nil {
			p.PricePerKg = decimal.NullDecimal{Decimal: price, Valid: true}
		}
	}
	return nil
}

func jsonInt(raw json.RawMessage) (int, bool) {
	if !isJSONNumber(raw) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func isJSONNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// NewPriceTrendPoint builds a fully keyed point. A nil price yields an
// unpriced point.
func NewPriceTrendPoint(name string, year, month int, price *decimal.Decimal) PriceTrendPoint {
	p := PriceTrendPoint{
		Name:      name,
		DataYear:  year,
		DataMonth: month,
		hasYear:   true,
		hasMonth:  true,
	}
	if price != nil {
		p.PricePerKg = decimal.NullDecimal{Decimal: *price, Valid: true}
	}
	return p
}

// Priced reports whether the point has a year, a month and a numeric price.
func (p PriceTrendPoint) Priced() bool {
	return p.hasYear && p.hasMonth && p.PricePerKg.Valid
}

// FilterPriced returns the priced points in their original order.
func FilterPriced(points []PriceTrendPoint) []PriceTrendPoint {
	priced := make([]PriceTrendPoint, 0, len(points))
	for _, p := range points {
		if p.Priced() {
			priced = append(priced, p)
		}
	}
	return priced
}

// SortNewestFirst orders points by year then month, newest first. The input
// slice is not modified.
func SortNewestFirst(points []PriceTrendPoint) []PriceTrendPoint {
	sorted := make([]PriceTrendPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DataYear != sorted[j].DataYear {
			return sorted[i].DataYear > sorted[j].DataYear
		}
		return sorted[i].DataMonth > sorted[j].DataMonth
	})
	return sorted
}
