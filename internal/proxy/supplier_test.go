package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNewProxySupplierKeepsWorkingProxies(t *testing.T) {
	var proxied atomic.Int32
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a forward proxy sees the absolute target URL
		if r.URL.Path == probePath {
			proxied.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["埃塞俄比亚"]`))
	}))
	defer working.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	supplier := NewProxySupplier(context.Background(), []string{broken.URL, working.URL, deadURL}, "http://catalog.invalid")

	if supplier.Len() != 1 {
		t.Fatalf("expected 1 usable proxy, got %d", supplier.Len())
	}
	for i := 0; i < 3; i++ {
		if got := supplier.Get(); got != working.URL {
			t.Errorf("expected %s, got %s", working.URL, got)
		}
	}
	if proxied.Load() == 0 {
		t.Error("expected the probe to go through the working proxy")
	}
}

func TestProxySupplierRoundRobin(t *testing.T) {
	supplier := &proxySupplier{proxies: []string{"http://a:1", "http://b:2"}}

	got := []string{supplier.Get(), supplier.Get(), supplier.Get()}
	want := []string{"http://a:1", "http://b:2", "http://a:1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestEmptyProxySupplier(t *testing.T) {
	supplier := NewProxySupplier(context.Background(), nil, "http://localhost:5002")
	if supplier.Get() != "" || supplier.Len() != 0 {
		t.Error("expected empty supplier to return no proxy")
	}
}
