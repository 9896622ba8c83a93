// Package apitest runs an in-memory copy of the catalog API for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"coffeebeans/client/internal/domain"

	"github.com/gorilla/mux"
)

// Server serves a fixed catalog over the same routes as the real API. Any
// route can be forced to fail with a status code.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	beans     []domain.CoffeeBean
	countries []string
	flavors   []string
	trends    map[string]json.RawMessage
	failures  map[string]int
	requests  []*http.Request
}

const (
	RouteBeans     = "beans"
	RouteCountries = "countries"
	RouteFlavors   = "flavors"
	RouteTrends    = "trends"
)

func NewServer() *Server {
	s := &Server{
		trends:   make(map[string]json.RawMessage),
		failures: make(map[string]int),
	}

	r := mux.NewRouter()
	r.UseEncodedPath()
	r.Use(s.record)
	r.HandleFunc("/api/coffee-beans", s.fail(RouteBeans, s.listBeans)).Methods(http.MethodGet)
	r.HandleFunc("/api/filters/countries", s.fail(RouteCountries, s.listCountries)).Methods(http.MethodGet)
	r.HandleFunc("/api/filters/flavor-categories", s.fail(RouteFlavors, s.listFlavors)).Methods(http.MethodGet)
	r.HandleFunc("/api/coffee-beans/{name}/price-trends", s.fail(RouteTrends, s.priceTrends)).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

func (s *Server) SetBeans(beans []domain.CoffeeBean) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beans = beans
}

func (s *Server) SetCountries(countries []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = countries
}

func (s *Server) SetFlavorCategories(flavors []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flavors = flavors
}

// SetTrends stores the raw JSON returned for a bean's price trends.
func (s *Server) SetTrends(name, rawJSON string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends[name] = json.RawMessage(rawJSON)
}

// FailWith makes a route answer with the given status. Zero clears it.
func (s *Server) FailWith(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) fail(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failures[route]
		s.mu.Unlock()

		if status != 0 {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			w.Write([]byte("<html><head><title>" + strconv.Itoa(status) + " " + http.StatusText(status) + "</title></head><body></body></html>"))
			return
		}
		next(w, r)
	}
}

func (s *Server) listBeans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	pageSize := atoiDefault(q.Get("page_size"), 10)

	s.mu.Lock()
	matched := make([]domain.CoffeeBean, 0, len(s.beans))
	for _, b := range s.beans {
		if c := q.Get("country"); c != "" && b.Country != c {
			continue
		}
		if t := q.Get("type"); t != "" && b.Type != t {
			continue
		}
		if f := q.Get("flavor_category"); f != "" && b.FlavorCategory != f {
			continue
		}
		matched = append(matched, b)
	}
	s.mu.Unlock()

	totalPages := (len(matched) + pageSize - 1) / pageSize
	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))

	writeJSON(w, domain.CoffeeBeansResponse{
		Data: matched[start:end],
		Pagination: domain.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: len(matched),
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

func (s *Server) listCountries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, nonNil(s.countries))
}

func (s *Server) listFlavors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, nonNil(s.flavors))
}

func (s *Server) priceTrends(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, `{"error": "bad bean name"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	raw, ok := s.trends[name]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "bean not found"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
