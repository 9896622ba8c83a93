package container

import (
	"context"

	"coffeebeans/client/internal/client"
	"coffeebeans/client/internal/config"
	"coffeebeans/client/internal/endpoint"
	"coffeebeans/client/internal/proxy"
	"coffeebeans/client/internal/view"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components of one client session
type Container struct {
	Config   *config.Config
	Resolver *endpoint.Resolver
	Proxies  proxy.ProxySupplier
	Client   client.CoffeeClient
}

// New resolves the session base URL and builds the API client
func New(ctx context.Context, cfg *config.Config) *Container {
	resolver := endpoint.NewResolver(cfg.API, nil)
	baseURL := resolver.BaseURL()

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Client.Proxies, baseURL)
	coffeeClient := client.NewCoffeeClient(cfg.Client, baseURL, proxySupplier)

	log.Debugf("Container ready for %s", baseURL)

	return &Container{
		Config:   cfg,
		Resolver: resolver,
		Proxies:  proxySupplier,
		Client:   coffeeClient,
	}
}

// BaseURL is the API base URL used for the whole session
func (c *Container) BaseURL() string {
	return c.Resolver.BaseURL()
}

// ListView builds a list controller reporting through notifier
func (c *Container) ListView(notifier view.Notifier) *view.ListController {
	return view.NewListController(c.Client, notifier)
}

// DetailView builds a detail controller for one bean
func (c *Container) DetailView() *view.DetailController {
	return view.NewDetailController(c.Client)
}
