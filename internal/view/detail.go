package view

import (
	"context"
	"sync"

	"coffeebeans/client/internal/client"
	"coffeebeans/client/internal/domain"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DetailState is a snapshot of the bean detail view.
type DetailState struct {
	Bean         *domain.CoffeeBean
	CurrentPrice decimal.NullDecimal
	Loading      bool
	Error        string
	Trends       []domain.PriceTrendPoint
}

// DetailController shows one bean and its price history. Errors are kept in
// the state and shown inline rather than as notifications.
type DetailController struct {
	client client.CoffeeClient

	mu         sync.Mutex
	state      DetailState
	generation uint64
}

func NewDetailController(c client.CoffeeClient) *DetailController {
	return &DetailController{
		client: c,
		state: DetailState{
			Loading: true,
			Trends:  []domain.PriceTrendPoint{},
		},
	}
}

func (dc *DetailController) State() DetailState {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	s := dc.state
	if dc.state.Bean != nil {
		bean := *dc.state.Bean
		s.Bean = &bean
	}
	s.Trends = append([]domain.PriceTrendPoint(nil), dc.state.Trends...)
	return s
}

// LoadBean decodes a bean handed over by the list view and loads its price
// trends.
func (dc *DetailController) LoadBean(ctx context.Context, payload string) {
	if payload == "" {
		dc.fail(msgBeanMissing)
		log.Warn("⚠️ Detail view opened without a bean")
		return
	}

	bean, err := domain.DecodeBean(payload)
	if err != nil {
		dc.fail(msgBeanUnparsable)
		log.Errorf("❌ %v", err)
		return
	}

	dc.mu.Lock()
	dc.state.Bean = bean
	dc.state.CurrentPrice = bean.PricePerKg
	dc.state.Error = ""
	dc.mu.Unlock()

	dc.LoadPriceTrends(ctx, bean.Name)
}

// LoadPriceTrends fetches the price history of a bean, keeps the priced
// points and orders them newest first.
func (dc *DetailController) LoadPriceTrends(ctx context.Context, beanName string) {
	dc.mu.Lock()
	dc.generation++
	generation := dc.generation
	dc.state.Loading = true
	dc.state.Error = ""
	dc.mu.Unlock()

	log.Debugf("🔄 Loading price trends for %s", beanName)

	points, err := dc.client.GetPriceTrends(ctx, beanName)

	dc.mu.Lock()
	defer dc.mu.Unlock()

	if generation != dc.generation {
		log.Debugf("Dropping stale price trends for %s", beanName)
		return
	}

	dc.state.Loading = false
	if err != nil {
		dc.state.Error = trendsErrorMessage(err)
		log.Errorf("❌ Failed to load price trends for %s: %v", beanName, err)
		return
	}

	dc.state.Trends = domain.SortNewestFirst(domain.FilterPriced(points))
	log.Debugf("✅ %d of %d price points usable for %s", len(dc.state.Trends), len(points), beanName)
}

// fail replaces whatever a previous bean left behind with the error.
func (dc *DetailController) fail(message string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.generation++
	dc.state = DetailState{
		Error:  message,
		Trends: []domain.PriceTrendPoint{},
	}
}
