package render

import (
	"bytes"
	"strings"
	"testing"

	"coffeebeans/client/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

func testBeans() []domain.CoffeeBean {
	return []domain.CoffeeBean{
		{
			Name:       "耶加雪菲 G1",
			Country:    "埃塞俄比亚",
			Type:       domain.BeanTypePremium,
			PricePerKg: decimal.NewNullDecimal(decimal.RequireFromString("152.5")),
		},
		{Name: "桑托斯", Country: "巴西", Type: domain.BeanTypeCommon, SoldOut: true},
	}
}

func TestBeanPageTable(t *testing.T) {
	var buf bytes.Buffer
	p := domain.Pagination{Page: 1, TotalPages: 3, TotalItems: 25, HasNext: true}

	if err := BeanPage(&buf, FormatTable, testBeans(), p); err != nil {
		t.Fatalf("BeanPage returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"精品豆", "商业豆", "152.50", "桑托斯 (sold out)", "page 1/3, 25 beans [next]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[prev]") {
		t.Errorf("prev must not be offered on the first page:\n%s", out)
	}
}

func TestBeanPageYAML(t *testing.T) {
	var buf bytes.Buffer
	p := domain.Pagination{Page: 1, PageSize: 10, TotalItems: 25, TotalPages: 3, HasNext: true}
	if err := BeanPage(&buf, FormatYAML, testBeans(), p); err != nil {
		t.Fatalf("BeanPage returned error: %v", err)
	}

	var doc struct {
		Beans []struct {
			Name       string `yaml:"name"`
			PricePerKg string `yaml:"price_per_kg"`
		} `yaml:"beans"`
		Pagination map[string]any `yaml:"pagination"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, buf.String())
	}
	if len(doc.Beans) != 2 || doc.Beans[1].PricePerKg != noPrice {
		t.Errorf("unexpected yaml document: %+v", doc)
	}
	for _, key := range []string{"has_next", "has_prev", "page", "page_size", "total_items", "total_pages"} {
		if _, ok := doc.Pagination[key]; !ok {
			t.Errorf("pagination key %q missing from yaml output:\n%s", key, buf.String())
		}
	}
}

func TestTrendsTable(t *testing.T) {
	price := decimal.RequireFromString("99")
	points := []domain.PriceTrendPoint{
		domain.NewPriceTrendPoint("a", 2024, 3, &price),
		domain.NewPriceTrendPoint("a", 2023, 11, &price),
	}

	var buf bytes.Buffer
	if err := Trends(&buf, FormatTable, points); err != nil {
		t.Fatalf("Trends returned error: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "2024-03") > strings.Index(out, "2023-11") {
		t.Errorf("expected input order to be kept:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("unexpected result %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
