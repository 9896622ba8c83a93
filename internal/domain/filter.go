package domain

// FilterDimension is one independently selectable filter.
type FilterDimension string

func (d FilterDimension) String() string {
	return string(d)
}

const (
	DimensionCountry FilterDimension = "country"
	DimensionType    FilterDimension = "type"
	DimensionFlavor  FilterDimension = "flavor"
)

var FilterDimensions = []FilterDimension{
	DimensionCountry,
	DimensionType,
	DimensionFlavor,
}

// AllLabel is the picker entry that clears a dimension.
const AllLabel = "全部"

const (
	BeanTypeCommon  = "common"
	BeanTypePremium = "premium"
)

// TypeOption pairs a bean type label with the value the API expects.
type TypeOption struct {
	Label string
	Value string
}

// TypeOptions is the picker table for the type dimension, in display order.
var TypeOptions = []TypeOption{
	{Label: AllLabel, Value: ""},
	{Label: "商业豆", Value: BeanTypeCommon},
	{Label: "精品豆", Value: BeanTypePremium},
}

// TypeValueForLabel maps a type label to its API value.
func TypeValueForLabel(label string) (string, bool) {
	for _, opt := range TypeOptions {
		if opt.Label == label {
			return opt.Value, true
		}
	}
	return "", false
}

// TypeLabelForValue maps an API type value back to its label.
func TypeLabelForValue(value string) (string, bool) {
	for _, opt := range TypeOptions {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// FilterSelection holds the API value of a dimension together with the
// label shown for it. The zero value means "nothing picked yet".
type FilterSelection struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AllSelection is what picking the AllLabel entry produces.
func AllSelection() FilterSelection {
	return FilterSelection{Value: "", Label: AllLabel}
}

// IsAll reports whether the selection sends no filter to the API.
func (s FilterSelection) IsAll() bool {
	return s.Value == ""
}
