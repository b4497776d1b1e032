// Package searching avalia filtros facetados sobre uma coleção de leads.
package searching

import (
	"context"
	"strings"

	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

// Filter devolve um novo slice com os leads que atendem a todas as facetas, na ordem recebida
func Filter(leads []*domain.Lead, filters domain.SearchFilters) []*domain.Lead {
	if filters.IsEmpty() {
		return append(make([]*domain.Lead, 0, len(leads)), leads...)
	}

	m := newMatcher(filters)

	result := make([]*domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if m.match(lead) {
			result = append(result, lead)
		}
	}

	return result
}

type matcher struct {
	industries     map[string]struct{}
	businessTypes  map[string]struct{}
	locations      map[string]struct{}
	employeeRanges []domain.Range
	revenueRanges  []domain.Range
	// Faixas informadas sem nenhum rótulo reconhecido não aceitam nenhum lead
	employeeFacet bool
	revenueFacet  bool
	minRating     float64
	term          string
}

func newMatcher(f domain.SearchFilters) matcher {
	m := matcher{
		industries:    toSet(f.Industries, false),
		businessTypes: toSet(f.BusinessTypes, false),
		locations:     toSet(f.Locations, true),
		employeeFacet: len(f.EmployeeRanges) > 0,
		revenueFacet:  len(f.RevenueRanges) > 0,
		minRating:     f.MinRating,
		term:          strings.ToLower(strings.TrimSpace(f.SearchTerm)),
	}

	for _, label := range f.EmployeeRanges {
		if r, ok := domain.FindRange(domain.EmployeeRanges, label); ok {
			m.employeeRanges = append(m.employeeRanges, r)
		}
	}

	for _, label := range f.RevenueRanges {
		if r, ok := domain.FindRange(domain.RevenueRanges, label); ok {
			m.revenueRanges = append(m.revenueRanges, r)
		}
	}

	return m
}

func toSet(values []string, fold bool) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if fold {
			v = strings.ToLower(v)
		}
		set[v] = struct{}{}
	}
	return set
}

func (m matcher) match(lead *domain.Lead) bool {
	if m.industries != nil {
		if _, ok := m.industries[lead.Industry]; !ok {
			return false
		}
	}

	if m.businessTypes != nil {
		if _, ok := m.businessTypes[lead.BusinessType]; !ok {
			return false
		}
	}

	if m.employeeFacet && !inAnyRange(m.employeeRanges, float64(lead.EmployeeCount)) {
		return false
	}

	if m.revenueFacet && !inAnyRange(m.revenueRanges, lead.AnnualRevenue) {
		return false
	}

	if m.locations != nil {
		_, city := m.locations[strings.ToLower(lead.City)]
		_, state := m.locations[strings.ToLower(lead.State)]
		if !city && !state {
			return false
		}
	}

	if m.minRating > 0 && lead.Rating < m.minRating {
		return false
	}

	if m.term != "" {
		haystack := strings.ToLower(lead.CompanyName + " " + lead.ContactName + " " + lead.Description)
		if !strings.Contains(haystack, m.term) {
			return false
		}
	}

	return true
}

func inAnyRange(ranges []domain.Range, v float64) bool {
	for _, r := range ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// DistinctReader lista valores distintos de uma coluna de leads
type DistinctReader interface {
	Distinct(ctx context.Context, field domain.LeadField) ([]string, error)
}

// Options monta as opções de filtro a partir dos dados atuais e das faixas fixas
func Options(ctx context.Context, reader DistinctReader) (*domain.FilterOptions, error) {
	fields := []domain.LeadField{
		domain.LeadFieldIndustry,
		domain.LeadFieldBusinessType,
		domain.LeadFieldCity,
		domain.LeadFieldState,
	}

	values := make(map[domain.LeadField][]string, len(fields))
	for _, field := range fields {
		v, err := reader.Distinct(ctx, field)
		if err != nil {
			return nil, err
		}
		values[field] = v
	}

	return &domain.FilterOptions{
		Industries:     values[domain.LeadFieldIndustry],
		BusinessTypes:  values[domain.LeadFieldBusinessType],
		Cities:         values[domain.LeadFieldCity],
		States:         values[domain.LeadFieldState],
		EmployeeRanges: domain.RangeLabels(domain.EmployeeRanges),
		RevenueRanges:  domain.RangeLabels(domain.RevenueRanges),
	}, nil
}
