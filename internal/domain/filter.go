package domain

// SearchFilters descreve as facetas opcionais da busca de leads
type SearchFilters struct {
	Industries     []string `json:"industries,omitempty"`
	BusinessTypes  []string `json:"businessTypes,omitempty"`
	EmployeeRanges []string `json:"employeeRanges,omitempty"`
	RevenueRanges  []string `json:"revenueRanges,omitempty"`
	Locations      []string `json:"locations,omitempty"` // Cidade ou estado
	MinRating      float64  `json:"minRating,omitempty"`
	SearchTerm     string   `json:"searchTerm,omitempty"`
}

// IsEmpty indica que nenhuma faceta foi informada
func (f SearchFilters) IsEmpty() bool {
	return len(f.Industries) == 0 &&
		len(f.BusinessTypes) == 0 &&
		len(f.EmployeeRanges) == 0 &&
		len(f.RevenueRanges) == 0 &&
		len(f.Locations) == 0 &&
		f.MinRating <= 0 &&
		f.SearchTerm == ""
}

// Range é um intervalo fechado à esquerda: Min <= v e (Max == nil ou v < *Max)
type Range struct {
	Label string
	Min   float64
	Max   *float64
}

func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return r.Max == nil || v < *r.Max
}

func bound(v float64) *float64 {
	return &v
}

// EmployeeRanges são as faixas de funcionários oferecidas como faceta
var EmployeeRanges = []Range{
	{Label: "1-10", Min: 0, Max: bound(11)},
	{Label: "11-50", Min: 11, Max: bound(51)},
	{Label: "51-200", Min: 51, Max: bound(201)},
	{Label: "201-500", Min: 201, Max: bound(501)},
	{Label: "500+", Min: 501},
}

// RevenueRanges são as faixas de faturamento anual oferecidas como faceta
var RevenueRanges = []Range{
	{Label: "<$1M", Min: 0, Max: bound(1_000_000)},
	{Label: "$1M-$5M", Min: 1_000_000, Max: bound(5_000_000)},
	{Label: "$5M-$25M", Min: 5_000_000, Max: bound(25_000_000)},
	{Label: "$25M-$100M", Min: 25_000_000, Max: bound(100_000_000)},
	{Label: "$100M+", Min: 100_000_000},
}

// FindRange procura a faixa pelo rótulo
func FindRange(ranges []Range, label string) (Range, bool) {
	for _, r := range ranges {
		if r.Label == label {
			return r, true
		}
	}
	return Range{}, false
}

func RangeLabels(ranges []Range) []string {
	labels := make([]string, 0, len(ranges))
	for _, r := range ranges {
		labels = append(labels, r.Label)
	}
	return labels
}

type FilterOptions struct {
	Industries     []string `json:"industries"`
	BusinessTypes  []string `json:"businessTypes"`
	Cities         []string `json:"cities"`
	States         []string `json:"states"`
	EmployeeRanges []string `json:"employeeRanges"`
	RevenueRanges  []string `json:"revenueRanges"`
}

// LeadField identifica colunas usadas na descoberta de opções de filtro
type LeadField string

const (
	LeadFieldIndustry     LeadField = "industry"
	LeadFieldBusinessType LeadField = "business_type"
	LeadFieldCity         LeadField = "city"
	LeadFieldState        LeadField = "state"
)
