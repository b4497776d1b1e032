package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name         string
		filters      domain.SearchFilters
		expectedSQL  []string
		expectedArgs int
	}{
		{
			name:         "sem filtros ordena por score e rating",
			filters:      domain.SearchFilters{},
			expectedSQL:  []string{"FROM leads", "ORDER BY score DESC, rating DESC"},
			expectedArgs: 0,
		},
		{
			name: "industria e avaliação mínima",
			filters: domain.SearchFilters{
				Industries: []string{"Technology", "Energy"},
				MinRating:  6,
			},
			expectedSQL:  []string{"industry IN ($1,$2)", "rating >= $3"},
			expectedArgs: 3,
		},
		{
			name: "localização compara cidade ou estado",
			filters: domain.SearchFilters{
				Locations: []string{"Austin", "CA"},
			},
			expectedSQL:  []string{"(LOWER(city) = ANY($1) OR LOWER(state) = ANY($2))"},
			expectedArgs: 2,
		},
		{
			name: "termo livre usa ILIKE",
			filters: domain.SearchFilters{
				SearchTerm: "solar",
			},
			expectedSQL:  []string{"ILIKE $1"},
			expectedArgs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := BuildSearchQuery(tt.filters).ToSql()
			require.NoError(t, err)

			for _, fragment := range tt.expectedSQL {
				assert.Contains(t, query, fragment)
			}
			assert.Len(t, args, tt.expectedArgs)
		})
	}
}

func TestBuildSearchQuery_EscapesLikeWildcards(t *testing.T) {
	_, args, err := BuildSearchQuery(domain.SearchFilters{SearchTerm: "100%_off"}).ToSql()
	require.NoError(t, err)
	require.Len(t, args, 1)

	assert.Equal(t, `%100\%\_off%`, args[0])
}

func TestBuildStatusUpdate(t *testing.T) {
	query, args, err := BuildStatusUpdate("lead-1", domain.LeadStatusProspect, domain.LeadStatusContacted).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE leads SET status = $1")
	assert.Contains(t, query, "contacted_at = COALESCE(contacted_at, CASE WHEN $2::text = 'contacted' THEN NOW() END)")
	assert.Contains(t, query, "replied_at = COALESCE(replied_at, CASE WHEN $3::text = 'replied' THEN NOW() END)")
	assert.Contains(t, query, "updated_at = NOW()")
	assert.Contains(t, query, "WHERE id = $4 AND status = $5")
	assert.Equal(t, []any{domain.LeadStatusContacted, "contacted", "contacted", "lead-1", domain.LeadStatusProspect}, args)
}

func TestBuildDistinctQuery(t *testing.T) {
	builder, err := BuildDistinctQuery(domain.LeadFieldCity)
	require.NoError(t, err)

	query, _, err := builder.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT city FROM leads WHERE city <> $1 ORDER BY city", query)

	_, err = BuildDistinctQuery(domain.LeadField("email; DROP TABLE leads"))
	assert.ErrorIs(t, err, ErrUnsupportedField)
}
