package endpoint

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"

	"coffeebeans/client/internal/config"

	log "github.com/sirupsen/logrus"
)

const (
	PlatformDevtools   = "devtools"
	PlatformDevice     = "device"
	PlatformProduction = "production"

	loopbackHost = "localhost"
)

// PlatformDetector reports the runtime the client is running on.
type PlatformDetector func() (string, error)

// StaticPlatform returns a detector that always reports the given platform.
func StaticPlatform(platform string) PlatformDetector {
	return func() (string, error) {
		if platform == "" {
			return "", fmt.Errorf("platform is not configured")
		}
		return platform, nil
	}
}

// Resolver picks the API base URL once per session and hands out the same
// value on every call.
type Resolver struct {
	cfg    config.APIConfig
	detect PlatformDetector

	once    sync.Once
	baseURL string
}

func NewResolver(cfg config.APIConfig, detect PlatformDetector) *Resolver {
	if detect == nil {
		detect = StaticPlatform(cfg.Platform)
	}
	return &Resolver{
		cfg:    cfg,
		detect: detect,
	}
}

// BaseURL returns the session base URL, resolving it on first use.
func (r *Resolver) BaseURL() string {
	r.once.Do(func() {
		r.baseURL = r.resolve()
		log.Infof("🌐 Using API base URL %s", r.baseURL)
	})
	return r.baseURL
}

func (r *Resolver) resolve() string {
	fallback := r.loopback()

	platform, err := r.detect()
	if err != nil {
		log.Warnf("⚠️ Platform detection failed, falling back to %s: %v", fallback, err)
		return fallback
	}

	var candidate string
	switch platform {
	case PlatformDevtools:
		return fallback
	case PlatformProduction:
		if r.cfg.ProductionDomain == "" {
			log.Warnf("⚠️ Production platform without a domain, falling back to %s", fallback)
			return fallback
		}
		scheme := r.cfg.ProductionScheme
		if scheme == "" {
			scheme = "https"
		}
		candidate = fmt.Sprintf("%s://%s", scheme, r.cfg.ProductionDomain)
	default:
		if r.cfg.DeviceHost == "" {
			log.Warnf("⚠️ No device host configured for platform %q, falling back to %s", platform, fallback)
			return fallback
		}
		candidate = "http://" + net.JoinHostPort(r.cfg.DeviceHost, strconv.Itoa(r.cfg.Port))
	}

	if err := validate(candidate); err != nil {
		log.Warnf("⚠️ Resolved base URL %q is invalid, falling back to %s: %v", candidate, fallback, err)
		return fallback
	}
	return candidate
}

func (r *Resolver) loopback() string {
	return "http://" + net.JoinHostPort(loopbackHost, strconv.Itoa(r.cfg.Port))
}

func validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
