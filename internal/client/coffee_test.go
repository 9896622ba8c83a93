package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffeebeans/client/internal/apitest"
	"coffeebeans/client/internal/config"
	"coffeebeans/client/internal/domain"
)

func testClientConfig() config.ClientConfig {
	return config.ClientConfig{
		Timeout:   5,
		PageSize:  10,
		UserAgent: "coffee-beans-client/test",
	}
}

func sampleBeans(n int) []domain.CoffeeBean {
	beans := make([]domain.CoffeeBean, 0, n)
	for i := 0; i < n; i++ {
		country := "埃塞俄比亚"
		beanType := domain.BeanTypePremium
		if i%2 == 1 {
			country = "哥伦比亚"
			beanType = domain.BeanTypeCommon
		}
		beans = append(beans, domain.CoffeeBean{
			Name:           fmt.Sprintf("bean-%02d", i),
			Country:        country,
			Type:           beanType,
			FlavorCategory: "花香",
		})
	}
	return beans
}

func TestListBeansSendsPageAndOnlyPresentFilters(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.SetBeans(sampleBeans(25))

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	resp, err := c.ListBeans(context.Background(), 2, domain.BeanFilters{Country: "埃塞俄比亚"})
	if err != nil {
		t.Fatalf("ListBeans returned error: %v", err)
	}

	q := srv.LastRequest().URL.Query()
	if q.Get("page") != "2" || q.Get("page_size") != "10" {
		t.Errorf("unexpected paging params: %v", q)
	}
	if q.Get("country") != "埃塞俄比亚" {
		t.Errorf("expected country filter, got %q", q.Get("country"))
	}
	for _, key := range []string{"type", "flavor_category"} {
		if q.Has(key) {
			t.Errorf("unset filter %s must not be sent", key)
		}
	}

	// 13 Ethiopian beans: page 2 holds the last 3
	if len(resp.Data) != 3 {
		t.Errorf("expected 3 beans on page 2, got %d", len(resp.Data))
	}
	if resp.Pagination.HasNext || !resp.Pagination.HasPrev {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestListBeansFirstPageScenario(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.SetBeans(sampleBeans(25))

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	resp, err := c.ListBeans(context.Background(), 1, domain.BeanFilters{})
	if err != nil {
		t.Fatalf("ListBeans returned error: %v", err)
	}
	if len(resp.Data) != 10 {
		t.Errorf("expected 10 beans, got %d", len(resp.Data))
	}
	if !resp.Pagination.HasNext || resp.Pagination.HasPrev {
		t.Errorf("expected next enabled and prev disabled, got %+v", resp.Pagination)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.Pagination.TotalPages)
	}
}

func TestRequestsCarryHeaders(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)
	if _, err := c.ListCountries(context.Background()); err != nil {
		t.Fatalf("ListCountries returned error: %v", err)
	}
	if _, err := c.ListCountries(context.Background()); err != nil {
		t.Fatalf("ListCountries returned error: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	first, second := reqs[0].Header.Get(requestIDHeader), reqs[1].Header.Get(requestIDHeader)
	if first == "" || first == second {
		t.Errorf("expected distinct request IDs, got %q and %q", first, second)
	}
	if ua := reqs[0].Header.Get("User-Agent"); ua != "coffee-beans-client/test" {
		t.Errorf("unexpected user agent %q", ua)
	}
}

func TestFilterOptionLists(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.SetCountries([]string{"埃塞俄比亚", "哥伦比亚", "肯尼亚"})
	srv.SetFlavorCategories([]string{"花香", "果酸"})

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	countries, err := c.ListCountries(context.Background())
	if err != nil {
		t.Fatalf("ListCountries returned error: %v", err)
	}
	if len(countries) != 3 || countries[2] != "肯尼亚" {
		t.Errorf("unexpected countries: %v", countries)
	}

	flavors, err := c.ListFlavorCategories(context.Background())
	if err != nil {
		t.Fatalf("ListFlavorCategories returned error: %v", err)
	}
	if len(flavors) != 2 || flavors[0] != "花香" {
		t.Errorf("unexpected flavors: %v", flavors)
	}
}

func TestGetPriceTrendsEscapesName(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	name := "耶加雪菲 G1 #7"
	srv.SetTrends(name, `[
		{"name": "耶加雪菲 G1 #7", "data_year": 2024, "data_month": 1, "price_per_kg": 150},
		{"name": "耶加雪菲 G1 #7", "data_year": 2024, "data_month": 2, "price_per_kg": null}
	]`)

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	points, err := c.GetPriceTrends(context.Background(), name)
	if err != nil {
		t.Fatalf("GetPriceTrends returned error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected raw points to be returned unfiltered, got %d", len(points))
	}
	if !points[0].Priced() || points[1].Priced() {
		t.Errorf("unexpected priced flags: %+v", points)
	}
}

func TestHTTPErrorCarriesStatus(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.FailWith(apitest.RouteBeans, http.StatusInternalServerError)

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	_, err := c.ListBeans(context.Background(), 1, domain.BeanFilters{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", httpErr.StatusCode)
	}
	if httpErr.Detail != "500 Internal Server Error" {
		t.Errorf("expected title as detail, got %q", httpErr.Detail)
	}
}

func TestJSONErrorDetail(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	_, err := c.GetPriceTrends(context.Background(), "unknown")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound || httpErr.Detail != "bean not found" {
		t.Errorf("unexpected error: %+v", httpErr)
	}
}

func TestNon200SuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	_, err := c.ListCountries(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNoContent {
		t.Fatalf("expected HTTPError with 204, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := NewCoffeeClient(testClientConfig(), baseURL, nil)

	_, err := c.ListFlavorCategories(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.Op != "list flavor categories" {
		t.Errorf("unexpected op %q", netErr.Op)
	}
}

func TestMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	c := NewCoffeeClient(testClientConfig(), srv.URL, nil)

	_, err := c.ListBeans(context.Background(), 1, domain.BeanFilters{})
	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"html title", "text/html", "<html><head><title> 502  Bad Gateway </title></head></html>", "502 Bad Gateway"},
		{"html heading", "text/html", "<html><body><h1>Service Unavailable</h1><p>later</p></body></html>", "Service Unavailable"},
		{"json message", "application/json", `{"message": "page out of range"}`, "page out of range"},
		{"plain text", "text/plain", "upstream   timed out\n", "upstream timed out"},
		{"empty", "", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorDetail(tt.contentType, tt.body); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
