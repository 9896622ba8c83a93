package proxy

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	probePath    = "/api/filters/countries"
	probeTimeout = 5 * time.Second
	maxParallel  = 8
)

// ProxySupplier hands out working proxies in round-robin order
type ProxySupplier interface {
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier probes every configured proxy against the catalog API
// and keeps the ones that answer. An empty list yields a supplier that
// never returns a proxy.
func NewProxySupplier(ctx context.Context, proxies []string, baseURL string) ProxySupplier {
	if len(proxies) == 0 {
		return &proxySupplier{}
	}

	probeURL := strings.TrimRight(baseURL, "/") + probePath
	results := make([]bool, len(proxies))

	log.Infof("🔄 Probing %d proxies against %s", len(proxies), probeURL)

	semaphore := make(chan struct{}, maxParallel)
	var wg sync.WaitGroup

	for i, proxyURL := range proxies {
		wg.Add(1)

		go func(index int, proxy string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[index] = isProxyValid(ctx, proxy, probeURL)
		}(i, proxyURL)
	}

	wg.Wait()

	valid := make([]string, 0, len(proxies))
	for i, ok := range results {
		if ok {
			valid = append(valid, proxies[i])
		}
	}

	log.Infof("✅ %d of %d proxies are usable", len(valid), len(proxies))

	return &proxySupplier{proxies: valid}
}

// Get returns the next proxy URL, or "" when none is usable
func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

func isProxyValid(ctx context.Context, proxyURL, probeURL string) bool {
	client := resty.New().
		SetTimeout(probeTimeout).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(probeURL)

	if err != nil {
		log.Infof("❌ Proxy %s failed: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Infof("❌ Proxy %s answered with status %s", proxyURL, resp.Status())
		return false
	}

	log.Debugf("✅ Proxy %s is working", proxyURL)
	return true
}
