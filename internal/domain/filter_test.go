package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilters_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		filters  SearchFilters
		expected bool
	}{
		{name: "sem facetas", filters: SearchFilters{}, expected: true},
		{name: "slices vazios não contam", filters: SearchFilters{Industries: []string{}}, expected: true},
		{name: "nota mínima zero não conta", filters: SearchFilters{MinRating: 0}, expected: true},
		{name: "indústria", filters: SearchFilters{Industries: []string{"Energy"}}, expected: false},
		{name: "nota mínima", filters: SearchFilters{MinRating: 7}, expected: false},
		{name: "termo de busca", filters: SearchFilters{SearchTerm: "cafe"}, expected: false},
		{name: "localização", filters: SearchFilters{Locations: []string{"TX"}}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.IsEmpty())
		})
	}
}
