package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"coffeebeans/client/internal/config"
	"coffeebeans/client/internal/domain"
	"coffeebeans/client/internal/proxy"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	beansPath            = "/api/coffee-beans"
	countriesPath        = "/api/filters/countries"
	flavorCategoriesPath = "/api/filters/flavor-categories"
	priceTrendsPath      = "/api/coffee-beans/{name}/price-trends"

	requestIDHeader = "X-Request-ID"
)

type CoffeeClient interface {
	ListBeans(ctx context.Context, page int, filters domain.BeanFilters) (*domain.CoffeeBeansResponse, error)
	ListCountries(ctx context.Context) ([]string, error)
	ListFlavorCategories(ctx context.Context) ([]string, error)
	GetPriceTrends(ctx context.Context, beanName string) ([]domain.PriceTrendPoint, error)
}

type coffeeClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	pageSize   int
	httpClient *resty.Client
}

func NewCoffeeClient(cfg config.ClientConfig, baseURL string, proxySupplier proxy.ProxySupplier) CoffeeClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &coffeeClient{
		rl:         rl,
		baseURL:    baseURL,
		pageSize:   cfg.PageSize,
		httpClient: client,
	}
}

func (c *coffeeClient) ListBeans(ctx context.Context, page int, filters domain.BeanFilters) (*domain.CoffeeBeansResponse, error) {
	if page < 1 {
		page = 1
	}

	req := c.newRequest(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("page_size", strconv.Itoa(c.pageSize)).
		SetQueryParams(filters.QueryParams())

	var result domain.CoffeeBeansResponse
	if err := c.getJSON(req, "list coffee beans", beansPath, &result); err != nil {
		return nil, err
	}

	log.Debugf("Fetched page %d with %d beans (%d total)", result.Pagination.Page, len(result.Data), result.Pagination.TotalItems)
	return &result, nil
}

func (c *coffeeClient) ListCountries(ctx context.Context) ([]string, error) {
	var countries []string
	if err := c.getJSON(c.newRequest(ctx), "list countries", countriesPath, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *coffeeClient) ListFlavorCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(c.newRequest(ctx), "list flavor categories", flavorCategoriesPath, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *coffeeClient) GetPriceTrends(ctx context.Context, beanName string) ([]domain.PriceTrendPoint, error) {
	req := c.newRequest(ctx).SetPathParam("name", beanName)

	var points []domain.PriceTrendPoint
	if err := c.getJSON(req, "get price trends", priceTrendsPath, &points); err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d price trend points for %s", len(points), beanName)
	return points, nil
}

func (c *coffeeClient) newRequest(ctx context.Context) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
}

func (c *coffeeClient) getJSON(req *resty.Request, op, path string, out any) error {
	c.rl.Take()

	requestID := req.Header.Get(requestIDHeader)
	logger := log.WithFields(log.Fields{
		"op":         op,
		"request_id": requestID,
	})
	logger.Debugf("➡️ GET %s%s", c.baseURL, path)

	resp, err := req.Get(path)
	if err != nil {
		logger.Errorf("❌ Request failed: %v", err)
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		httpErr := &HTTPError{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Detail:     errorDetail(resp.Header().Get("Content-Type"), resp.String()),
		}
		logger.Errorf("❌ %v", httpErr)
		return httpErr
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		logger.Errorf("❌ Failed to decode response: %v", err)
		return &domain.ParseError{Source: fmt.Sprintf("%s response", op), Err: err}
	}

	return nil
}
