package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"coffeebeans/client/internal/apitest"
	"coffeebeans/client/internal/client"
	"coffeebeans/client/internal/config"
	"coffeebeans/client/internal/domain"
	"coffeebeans/client/internal/render"
	"coffeebeans/client/internal/view"
)

func newTestBrowser(t *testing.T, out *bytes.Buffer) *browser {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	beans := make([]domain.CoffeeBean, 0, 12)
	for i := 0; i < 12; i++ {
		beans = append(beans, domain.CoffeeBean{
			Name:    fmt.Sprintf("bean-%02d", i),
			Country: []string{"埃塞俄比亚", "肯尼亚"}[i%2],
			Type:    domain.BeanTypeCommon,
		})
	}
	srv.SetBeans(beans)
	srv.SetCountries([]string{"埃塞俄比亚", "肯尼亚"})
	srv.SetTrends("bean-01", `[{"name": "bean-01", "data_year": 2024, "data_month": 5, "price_per_kg": 88}]`)

	c := client.NewCoffeeClient(config.ClientConfig{PageSize: 10, Timeout: 5}, srv.URL, nil)
	return &browser{
		ctx:    context.Background(),
		out:    out,
		format: render.FormatTable,
		list:   view.NewListController(c, view.NewWriterNotifier(out)),
		detail: func() *view.DetailController { return view.NewDetailController(c) },
	}
}

func TestBrowseSession(t *testing.T) {
	var out bytes.Buffer
	b := newTestBrowser(t, &out)

	script := strings.Join([]string{
		"next",
		"prev",
		"country",
		"country 2",
		"open 1",
		"trends 1",
		"page 9",
		"bogus",
		"quit",
	}, "\n")

	if err := b.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"page 1/2, 12 beans [next]",
		"page 2/2, 12 beans [prev]",
		"filters: country=肯尼亚",
		"page 1/1, 6 beans",
		"Name:",
		"2024-05",
		"error: invalid option",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestResolveTypeFlag(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"premium": domain.BeanTypePremium,
		"精品豆":     domain.BeanTypePremium,
		"商业豆":     domain.BeanTypeCommon,
	}
	for in, want := range cases {
		got, err := resolveTypeFlag(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := resolveTypeFlag("robusta"); err == nil {
		t.Error("expected error for unknown type")
	}
}
