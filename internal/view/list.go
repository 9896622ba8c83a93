package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coffeebeans/client/internal/client"
	"coffeebeans/client/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RowMode decides what selecting a row does.
type RowMode int

const (
	// RowPanel opens the bean in the in-place detail panel.
	RowPanel RowMode = iota
	// RowNavigate hands the encoded bean to a separate detail view.
	RowNavigate
)

var ErrInvalidOption = errors.New("invalid option")

// ListState is a snapshot of the list view.
type ListState struct {
	Page    int
	Loading bool
	Error   string

	Country domain.FilterSelection
	Type    domain.FilterSelection
	Flavor  domain.FilterSelection

	Countries        []string
	FlavorCategories []string

	Beans      []domain.CoffeeBean
	Pagination domain.Pagination

	SelectedBean *domain.CoffeeBean
	ShowDetail   bool
}

// Filters returns the filters the next listing request will send.
func (s ListState) Filters() domain.BeanFilters {
	return domain.BeanFilters{
		Country:        s.Country.Value,
		Type:           s.Type.Value,
		FlavorCategory: s.Flavor.Value,
	}
}

// ListController drives the paginated, filterable bean list.
type ListController struct {
	client   client.CoffeeClient
	notifier Notifier

	mu    sync.Mutex
	state ListState
	// generation of the newest LoadRecords call; older responses are dropped
	generation uint64
}

func NewListController(c client.CoffeeClient, notifier Notifier) *ListController {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &ListController{
		client:   c,
		notifier: notifier,
		state: ListState{
			Page:             1,
			Countries:        []string{},
			FlavorCategories: []string{},
			Beans:            []domain.CoffeeBean{},
		},
	}
}

// State returns a copy of the current state.
func (lc *ListController) State() ListState {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	s := lc.state
	s.Countries = append([]string(nil), lc.state.Countries...)
	s.FlavorCategories = append([]string(nil), lc.state.FlavorCategories...)
	s.Beans = append([]domain.CoffeeBean(nil), lc.state.Beans...)
	if lc.state.SelectedBean != nil {
		bean := *lc.state.SelectedBean
		s.SelectedBean = &bean
	}
	return s
}

// Init loads the filter options and the first page, the way the view does
// when it is first shown.
func (lc *ListController) Init(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		lc.LoadFilterOptions(ctx)
	}()
	go func() {
		defer wg.Done()
		lc.LoadRecords(ctx)
	}()
	wg.Wait()
}

type optionLoadError struct {
	message string
	err     error
}

func (e *optionLoadError) Error() string { return e.err.Error() }
func (e *optionLoadError) Unwrap() error { return e.err }

// LoadFilterOptions fetches the country and flavor category lists together.
// Either both lists are replaced or neither is.
func (lc *ListController) LoadFilterOptions(ctx context.Context) {
	var countries, flavors []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := lc.client.ListCountries(gctx)
		if err != nil {
			return &optionLoadError{message: msgCountriesFailed, err: err}
		}
		countries = result
		return nil
	})
	g.Go(func() error {
		result, err := lc.client.ListFlavorCategories(gctx)
		if err != nil {
			return &optionLoadError{message: msgFlavorsFailed, err: err}
		}
		flavors = result
		return nil
	})

	if err := g.Wait(); err != nil {
		message := msgCountriesFailed
		var optErr *optionLoadError
		if errors.As(err, &optErr) {
			message = optErr.message
		}
		log.Errorf("❌ Failed to load filter options: %v", err)
		lc.notifier.Notify(message)
		return
	}

	if countries == nil {
		countries = []string{}
	}
	if flavors == nil {
		flavors = []string{}
	}

	lc.mu.Lock()
	lc.state.Countries = countries
	lc.state.FlavorCategories = flavors
	lc.mu.Unlock()

	log.Infof("✅ Loaded %d countries and %d flavor categories", len(countries), len(flavors))
}

// LoadRecords fetches the current page with the active filters.
func (lc *ListController) LoadRecords(ctx context.Context) {
	lc.mu.Lock()
	lc.generation++
	generation := lc.generation
	page := lc.state.Page
	filters := lc.state.Filters()
	lc.state.Loading = true
	lc.mu.Unlock()

	log.WithFields(log.Fields{
		"page":            page,
		"country":         filters.Country,
		"type":            filters.Type,
		"flavor_category": filters.FlavorCategory,
	}).Debug("🔄 Loading coffee beans")

	resp, err := lc.client.ListBeans(ctx, page, filters)

	lc.mu.Lock()
	if generation != lc.generation {
		lc.mu.Unlock()
		log.Debugf("Dropping stale response for page %d", page)
		return
	}

	lc.state.Loading = false
	if err != nil {
		lc.state.Error = msgRecordsFailed
		lc.mu.Unlock()

		log.Errorf("❌ Failed to load coffee beans: %v", err)
		lc.notifier.Notify(msgRecordsFailed)
		return
	}

	beans := resp.Data
	if beans == nil {
		beans = []domain.CoffeeBean{}
	}
	lc.state.Error = ""
	lc.state.Beans = beans
	lc.state.Pagination = resp.Pagination
	lc.mu.Unlock()

	log.Debugf("✅ Loaded %d beans for page %d", len(beans), page)
}

// FilterRange lists the picker entries of a dimension, "all" first.
func (lc *ListController) FilterRange(dim domain.FilterDimension) []string {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.filterRangeLocked(dim)
}

func (lc *ListController) filterRangeLocked(dim domain.FilterDimension) []string {
	switch dim {
	case domain.DimensionCountry:
		return append([]string{domain.AllLabel}, lc.state.Countries...)
	case domain.DimensionType:
		labels := make([]string, 0, len(domain.TypeOptions))
		for _, opt := range domain.TypeOptions {
			labels = append(labels, opt.Label)
		}
		return labels
	case domain.DimensionFlavor:
		return append([]string{domain.AllLabel}, lc.state.FlavorCategories...)
	default:
		return nil
	}
}

// SelectFilter applies the picker entry at index for a dimension, goes back
// to the first page and reloads.
func (lc *ListController) SelectFilter(ctx context.Context, dim domain.FilterDimension, index int) error {
	lc.mu.Lock()
	options := lc.filterRangeLocked(dim)
	if index < 0 || index >= len(options) {
		lc.mu.Unlock()
		log.Warnf("⚠️ Ignoring %s option %d, only %d available", dim, index, len(options))
		return fmt.Errorf("%w: %s index %d", ErrInvalidOption, dim, index)
	}

	selection := selectionFor(dim, index, options[index])
	switch dim {
	case domain.DimensionCountry:
		lc.state.Country = selection
	case domain.DimensionType:
		lc.state.Type = selection
	case domain.DimensionFlavor:
		lc.state.Flavor = selection
	}
	lc.state.Page = 1
	lc.mu.Unlock()

	log.Infof("🔎 %s filter set to %q (%q)", dim, selection.Label, selection.Value)

	lc.LoadRecords(ctx)
	return nil
}

func selectionFor(dim domain.FilterDimension, index int, label string) domain.FilterSelection {
	if label == domain.AllLabel {
		return domain.AllSelection()
	}
	if dim == domain.DimensionType {
		opt := domain.TypeOptions[index]
		return domain.FilterSelection{Value: opt.Value, Label: opt.Label}
	}
	return domain.FilterSelection{Value: label, Label: label}
}

// displayedPageLocked is the page the shown records belong to. Page can run
// ahead of it when the last load failed.
func (lc *ListController) displayedPageLocked() int {
	if lc.state.Pagination.Page > 0 {
		return lc.state.Pagination.Page
	}
	return lc.state.Page
}

// NextPage moves forward one page from the displayed page when the server
// says there is one.
func (lc *ListController) NextPage(ctx context.Context) {
	lc.mu.Lock()
	if !lc.state.Pagination.HasNext {
		lc.mu.Unlock()
		return
	}
	lc.state.Page = lc.displayedPageLocked() + 1
	lc.mu.Unlock()

	lc.LoadRecords(ctx)
}

// PrevPage moves back one page from the displayed page when the server says
// there is one.
func (lc *ListController) PrevPage(ctx context.Context) {
	lc.mu.Lock()
	current := lc.displayedPageLocked()
	if !lc.state.Pagination.HasPrev || current <= 1 {
		lc.mu.Unlock()
		return
	}
	lc.state.Page = current - 1
	lc.mu.Unlock()

	lc.LoadRecords(ctx)
}

// GoToPage jumps to a page within the known page range.
func (lc *ListController) GoToPage(ctx context.Context, page int) error {
	lc.mu.Lock()
	total := lc.state.Pagination.TotalPages
	if page < 1 || (total > 0 && page > total) {
		lc.mu.Unlock()
		return fmt.Errorf("%w: page %d of %d", ErrInvalidOption, page, total)
	}
	lc.state.Page = page
	lc.mu.Unlock()

	lc.LoadRecords(ctx)
	return nil
}

// SelectRow opens a bean. In RowPanel mode the panel state is updated and
// the returned payload is empty; in RowNavigate mode the bean is returned
// encoded for DetailController.LoadBean.
func (lc *ListController) SelectRow(bean domain.CoffeeBean, mode RowMode) (string, error) {
	if mode == RowNavigate {
		return domain.EncodeBean(bean)
	}

	lc.mu.Lock()
	lc.state.SelectedBean = &bean
	lc.state.ShowDetail = true
	lc.mu.Unlock()
	return "", nil
}

// CloseDetail hides the in-place detail panel.
func (lc *ListController) CloseDetail() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.state.ShowDetail = false
}
