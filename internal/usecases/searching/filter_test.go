package searching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository/mocks"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func sampleLeads() []*domain.Lead {
	return []*domain.Lead{
		{
			ID: "tech", CompanyName: "TechStart Solutions", ContactName: "Sarah Johnson",
			City: "San Francisco", State: "CA", Industry: "Technology", BusinessType: "B2B SaaS",
			EmployeeCount: 25, AnnualRevenue: 2_500_000, Rating: 7.9,
			Description: "Cloud software for small businesses",
		},
		{
			ID: "green", CompanyName: "Green Energy Co", ContactName: "Mike Chen",
			City: "Austin", State: "TX", Industry: "Energy", BusinessType: "B2B Services",
			EmployeeCount: 150, AnnualRevenue: 15_000_000, Rating: 8.75,
			Description: "Renewable energy solutions for businesses",
		},
		{
			ID: "cafe", CompanyName: "Local Cafe Chain", ContactName: "Emma Rodriguez",
			City: "Portland", State: "OR", Industry: "Food & Beverage", BusinessType: "B2C Retail",
			EmployeeCount: 45, AnnualRevenue: 3_200_000, Rating: 5.9,
			Description: "Neighborhood coffee shops",
		},
		{
			ID: "tiny", CompanyName: "Solo Studio", Industry: "Design",
			EmployeeCount: 0, AnnualRevenue: 0, Rating: 3.2,
		},
	}
}

func ids(leads []*domain.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.SearchFilters
		expected []string
	}{
		{
			name:     "sem facetas retorna tudo na mesma ordem",
			filters:  domain.SearchFilters{},
			expected: []string{"tech", "green", "cafe", "tiny"},
		},
		{
			name:     "avaliação mínima 6",
			filters:  domain.SearchFilters{MinRating: 6},
			expected: []string{"tech", "green"},
		},
		{
			name:     "conjunto de indústrias",
			filters:  domain.SearchFilters{Industries: []string{"Energy", "Food & Beverage"}},
			expected: []string{"green", "cafe"},
		},
		{
			name:     "tipo de negócio",
			filters:  domain.SearchFilters{BusinessTypes: []string{"B2B SaaS"}},
			expected: []string{"tech"},
		},
		{
			name:     "faixa de funcionários inclui zero em 1-10",
			filters:  domain.SearchFilters{EmployeeRanges: []string{"1-10", "11-50"}},
			expected: []string{"tech", "cafe", "tiny"},
		},
		{
			name:     "faixa de faturamento",
			filters:  domain.SearchFilters{RevenueRanges: []string{"$5M-$25M"}},
			expected: []string{"green"},
		},
		{
			name:     "rótulo desconhecido não corresponde a nada",
			filters:  domain.SearchFilters{EmployeeRanges: []string{"9000+"}},
			expected: []string{},
		},
		{
			name:     "localização por cidade ou estado sem diferenciar maiúsculas",
			filters:  domain.SearchFilters{Locations: []string{"austin", "or"}},
			expected: []string{"green", "cafe"},
		},
		{
			name:     "termo livre no nome do contato",
			filters:  domain.SearchFilters{SearchTerm: "MIKE"},
			expected: []string{"green"},
		},
		{
			name:     "termo livre na descrição",
			filters:  domain.SearchFilters{SearchTerm: "businesses"},
			expected: []string{"tech", "green"},
		},
		{
			name: "facetas combinadas com AND",
			filters: domain.SearchFilters{
				SearchTerm: "businesses",
				MinRating:  8,
			},
			expected: []string{"green"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Filter(sampleLeads(), tt.filters)))
		})
	}
}

func TestFilter_ReturnsNewSlice(t *testing.T) {
	leads := sampleLeads()
	result := Filter(leads, domain.SearchFilters{})

	result[0] = nil
	assert.NotNil(t, leads[0])
}

func TestOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLeadRepository(ctrl)

	repo.EXPECT().Distinct(gomock.Any(), domain.LeadFieldIndustry).Return([]string{"Energy", "Technology"}, nil)
	repo.EXPECT().Distinct(gomock.Any(), domain.LeadFieldBusinessType).Return([]string{"B2B SaaS"}, nil)
	repo.EXPECT().Distinct(gomock.Any(), domain.LeadFieldCity).Return([]string{"Austin"}, nil)
	repo.EXPECT().Distinct(gomock.Any(), domain.LeadFieldState).Return([]string{"TX"}, nil)

	options, err := Options(context.Background(), repo)
	require.NoError(t, err)

	assert.Equal(t, []string{"Energy", "Technology"}, options.Industries)
	assert.Equal(t, []string{"Austin"}, options.Cities)
	assert.Equal(t, []string{"1-10", "11-50", "51-200", "201-500", "500+"}, options.EmployeeRanges)
	assert.Equal(t, []string{"<$1M", "$1M-$5M", "$5M-$25M", "$25M-$100M", "$100M+"}, options.RevenueRanges)
}

func TestOptions_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLeadRepository(ctrl)

	repo.EXPECT().Distinct(gomock.Any(), domain.LeadFieldIndustry).Return(nil, errors.New("boom"))

	_, err := Options(context.Background(), repo)
	assert.Error(t, err)
}
