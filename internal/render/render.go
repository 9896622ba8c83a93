package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"coffeebeans/client/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

const noPrice = "-"

type beanRow struct {
	Name       string `json:"name" yaml:"name"`
	Country    string `json:"country" yaml:"country"`
	Origin     string `json:"origin,omitempty" yaml:"origin,omitempty"`
	Variety    string `json:"variety,omitempty" yaml:"variety,omitempty"`
	Grade      string `json:"grade,omitempty" yaml:"grade,omitempty"`
	Process    string `json:"processing_method,omitempty" yaml:"processing_method,omitempty"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Flavor     string `json:"flavor_category,omitempty" yaml:"flavor_category,omitempty"`
	PricePerKg string `json:"price_per_kg" yaml:"price_per_kg"`
	SoldOut    bool   `json:"sold_out" yaml:"sold_out"`
}

type pageDoc struct {
	Beans      []beanRow         `json:"beans" yaml:"beans"`
	Pagination domain.Pagination `json:"pagination" yaml:"pagination"`
}

type trendRow struct {
	Year       int    `json:"data_year" yaml:"data_year"`
	Month      int    `json:"data_month" yaml:"data_month"`
	PricePerKg string `json:"price_per_kg" yaml:"price_per_kg"`
}

func price(p decimal.NullDecimal) string {
	if !p.Valid {
		return noPrice
	}
	return p.Decimal.StringFixed(2)
}

func typeLabel(value string) string {
	if label, ok := domain.TypeLabelForValue(value); ok && value != "" {
		return label
	}
	return value
}

func toBeanRows(beans []domain.CoffeeBean) []beanRow {
	rows := make([]beanRow, 0, len(beans))
	for _, b := range beans {
		rows = append(rows, beanRow{
			Name:       b.Name,
			Country:    b.Country,
			Origin:     b.Origin,
			Variety:    b.Variety,
			Grade:      b.Grade,
			Process:    b.ProcessingMethod,
			Type:       b.Type,
			Flavor:     b.FlavorCategory,
			PricePerKg: price(b.PricePerKg),
			SoldOut:    b.SoldOut,
		})
	}
	return rows
}

// BeanPage writes one page of beans with its pagination footer.
func BeanPage(w io.Writer, format Format, beans []domain.CoffeeBean, p domain.Pagination) error {
	rows := toBeanRows(beans)
	switch format {
	case FormatJSON, FormatYAML:
		return encode(w, format, pageDoc{Beans: rows, Pagination: p})
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tCOUNTRY\tGRADE\tPROCESS\tTYPE\tFLAVOR\tPRICE/KG")
	for i, r := range rows {
		name := r.Name
		if r.SoldOut {
			name += " (sold out)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, name, r.Country, r.Grade, r.Process, typeLabel(r.Type), r.Flavor, r.PricePerKg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\npage %d/%d, %d beans%s%s\n",
		p.Page, p.TotalPages, p.TotalItems, navHint(p.HasPrev, " [prev]"), navHint(p.HasNext, " [next]"))
	return err
}

func navHint(enabled bool, hint string) string {
	if enabled {
		return hint
	}
	return ""
}

// Bean writes every field of a single bean.
func Bean(w io.Writer, format Format, b domain.CoffeeBean) error {
	if format != FormatTable {
		row := toBeanRows([]domain.CoffeeBean{b})[0]
		return encode(w, format, row)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fields := [][2]string{
		{"Name", b.Name},
		{"Code", b.Code},
		{"Country", b.Country},
		{"Origin", b.Origin},
		{"Estate", b.Estate},
		{"Plot", b.Plot},
		{"Variety", b.Variety},
		{"Grade", b.Grade},
		{"Processing", b.ProcessingMethod},
		{"Altitude", b.Altitude},
		{"Density", b.Density},
		{"Type", typeLabel(b.Type)},
		{"Flavor category", b.FlavorCategory},
		{"Flavor profile", b.FlavorProfile},
		{"Harvest season", fmt.Sprint(b.HarvestSeason)},
		{"Data", fmt.Sprintf("%d-%02d", b.DataYear, b.DataMonth)},
		{"Provider", b.Provider},
		{"Price/kg", price(b.PricePerKg)},
		{"Price/pkg", price(b.PricePerPkg)},
		{"Sold out", fmt.Sprint(b.SoldOut)},
	}
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

// Trends writes price trend points in the order given.
func Trends(w io.Writer, format Format, points []domain.PriceTrendPoint) error {
	rows := make([]trendRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, trendRow{Year: p.DataYear, Month: p.DataMonth, PricePerKg: price(p.PricePerKg)})
	}
	if format != FormatTable {
		return encode(w, format, rows)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no price history")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tPRICE/KG")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d-%02d\t%s\n", r.Year, r.Month, r.PricePerKg)
	}
	return tw.Flush()
}

// Options writes a picker range with its indexes.
func Options(w io.Writer, format Format, options []string) error {
	if format != FormatTable {
		return encode(w, format, options)
	}
	for i, o := range options {
		if _, err := fmt.Fprintf(w, "%3d  %s\n", i, o); err != nil {
			return err
		}
	}
	return nil
}

func encode(w io.Writer, format Format, v any) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
