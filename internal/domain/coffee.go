package domain

import "github.com/shopspring/decimal"

type CoffeeBean struct {
	Altitude         string              `json:"altitude"`
	Code             string              `json:"code"`
	Country          string              `json:"country"`
	DataMonth        int                 `json:"data_month"`
	DataYear         int                 `json:"data_year"`
	Density          string              `json:"density"`
	Estate           string              `json:"estate"`
	FlavorCategory   string              `json:"flavor_category"`
	FlavorProfile    string              `json:"flavor_profile"`
	Grade            string              `json:"grade"`
	HarvestSeason    int                 `json:"harvest_season"`
	Name             string              `json:"name"`
	Origin           string              `json:"origin"`
	Plot             string              `json:"plot"`
	PricePerKg       decimal.NullDecimal `json:"price_per_kg"`  // null when the provider has no quote
	PricePerPkg      decimal.NullDecimal `json:"price_per_pkg"` // null when sold by weight only
	ProcessingMethod string              `json:"processing_method"`
	Provider         string              `json:"provider"`
	SoldOut          bool                `json:"sold_out"`
	Type             string              `json:"type"`
	Variety          string              `json:"variety"`
}

type Pagination struct {
	HasNext    bool `json:"has_next" yaml:"has_next"`
	HasPrev    bool `json:"has_prev" yaml:"has_prev"`
	Page       int  `json:"page" yaml:"page"`
	PageSize   int  `json:"page_size" yaml:"page_size"`
	TotalItems int  `json:"total_items" yaml:"total_items"`
	TotalPages int  `json:"total_pages" yaml:"total_pages"`
}

type CoffeeBeansResponse struct {
	Data       []CoffeeBean `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// BeanFilters narrows a bean listing. Empty fields are not sent.
type BeanFilters struct {
	Country        string `json:"country,omitempty"`
	Type           string `json:"type,omitempty"`
	FlavorCategory string `json:"flavor_category,omitempty"`
}

// QueryParams returns only the filters that are set, keyed by their API name.
func (f BeanFilters) QueryParams() map[string]string {
	params := make(map[string]string, 3)
	if f.Country != "" {
		params["country"] = f.Country
	}
	if f.Type != "" {
		params["type"] = f.Type
	}
	if f.FlavorCategory != "" {
		params["flavor_category"] = f.FlavorCategory
	}
	return params
}
