package repository

//go:generate mockgen -source=lead.go -destination=mocks/lead_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

const leadsTable = "leads"

var leadColumns = []string{
	"id",
	"company_name",
	"contact_name",
	"email",
	"phone",
	"website",
	"address",
	"city",
	"state",
	"zip_code",
	"country",
	"industry",
	"business_type",
	"employee_count",
	"annual_revenue",
	"description",
	"rating",
	"score",
	"status",
	"source",
	"contacted_at",
	"replied_at",
	"created_at",
	"updated_at",
}

var ErrUnsupportedField = errors.New("unsupported lead field")

// Colunas permitidas na descoberta de opções de filtro
var distinctFields = map[domain.LeadField]struct{}{
	domain.LeadFieldIndustry:     {},
	domain.LeadFieldBusinessType: {},
	domain.LeadFieldCity:         {},
	domain.LeadFieldState:        {},
}

type LeadRepository interface {
	GetAll(ctx context.Context) ([]*domain.Lead, error)
	// GetByID retorna nil, nil quando o lead não existe
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	Query(ctx context.Context, filters domain.SearchFilters) ([]*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// UpdateStatus só aplica a mudança se o status atual for from; retorna false quando
	// o lead não existe ou já saiu de from
	UpdateStatus(ctx context.Context, id string, from, to domain.LeadStatus) (bool, error)
	UpdateScore(ctx context.Context, id string, rating float64, score int) (bool, error)
	Distinct(ctx context.Context, field domain.LeadField) ([]string, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func selectLeads() squirrel.SelectBuilder {
	return squirrel.
		Select(leadColumns...).
		From(leadsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *leadRepository) GetAll(ctx context.Context) ([]*domain.Lead, error) {
	query, args, err := selectLeads().
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryLeads(ctx, query, args...)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query, args, err := selectLeads().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	lead, err := scanLead(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead %s: %w", id, err)
	}

	return lead, nil
}

// BuildSearchQuery aplica no banco as facetas que o SQL expressa diretamente.
// Faixas de funcionários e faturamento são avaliadas depois, em memória.
func BuildSearchQuery(filters domain.SearchFilters) squirrel.SelectBuilder {
	builder := selectLeads()

	if len(filters.Industries) > 0 {
		builder = builder.Where(squirrel.Eq{"industry": filters.Industries})
	}

	if len(filters.BusinessTypes) > 0 {
		builder = builder.Where(squirrel.Eq{"business_type": filters.BusinessTypes})
	}

	if len(filters.Locations) > 0 {
		locations := make([]string, 0, len(filters.Locations))
		for _, l := range filters.Locations {
			locations = append(locations, strings.ToLower(l))
		}
		builder = builder.Where(squirrel.Or{
			squirrel.Expr("LOWER(city) = ANY(?)", pq.Array(locations)),
			squirrel.Expr("LOWER(state) = ANY(?)", pq.Array(locations)),
		})
	}

	if filters.MinRating > 0 {
		builder = builder.Where(squirrel.GtOrEq{"rating": filters.MinRating})
	}

	if term := strings.TrimSpace(filters.SearchTerm); term != "" {
		builder = builder.Where(
			squirrel.Expr("(company_name || ' ' || contact_name || ' ' || description) ILIKE ?", "%"+escapeLike(term)+"%"),
		)
	}

	return builder.OrderBy("score DESC", "rating DESC")
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

func (r *leadRepository) Query(ctx context.Context, filters domain.SearchFilters) ([]*domain.Lead, error) {
	query, args, err := BuildSearchQuery(filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryLeads(ctx, query, args...)
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	query, args, err := squirrel.
		Insert(leadsTable).
		Columns(
			"id", "company_name", "contact_name", "email", "phone", "website",
			"address", "city", "state", "zip_code", "country", "industry", "business_type",
			"employee_count", "annual_revenue", "description", "rating", "score", "status", "source",
		).
		Values(
			lead.ID, lead.CompanyName, lead.ContactName, lead.Email, lead.Phone, lead.Website,
			lead.Address, lead.City, lead.State, lead.ZipCode, lead.Country, lead.Industry, lead.BusinessType,
			lead.EmployeeCount, lead.AnnualRevenue, lead.Description, lead.Rating, lead.Score, lead.Status, lead.Source,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	created := *lead
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("failed to insert lead: %w", err)
	}

	return &created, nil
}

// BuildStatusUpdate grava o novo status e preenche contacted_at/replied_at apenas na primeira entrada.
// A linha só é afetada enquanto o status gravado ainda for from.
func BuildStatusUpdate(id string, from, status domain.LeadStatus) squirrel.UpdateBuilder {
	return squirrel.
		Update(leadsTable).
		Set("status", status).
		Set("contacted_at", squirrel.Expr("COALESCE(contacted_at, CASE WHEN ?::text = 'contacted' THEN NOW() END)", string(status))).
		Set("replied_at", squirrel.Expr("COALESCE(replied_at, CASE WHEN ?::text = 'replied' THEN NOW() END)", string(status))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, from, to domain.LeadStatus) (bool, error) {
	query, args, err := BuildStatusUpdate(id, from, to).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var updated bool
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		updated = affected == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to update status of lead %s: %w", id, err)
	}

	return updated, nil
}

func (r *leadRepository) UpdateScore(ctx context.Context, id string, rating float64, score int) (bool, error) {
	query, args, err := squirrel.
		Update(leadsTable).
		Set("rating", rating).
		Set("score", score).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update score of lead %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func BuildDistinctQuery(field domain.LeadField) (squirrel.SelectBuilder, error) {
	if _, ok := distinctFields[field]; !ok {
		return squirrel.SelectBuilder{}, fmt.Errorf("%w: %s", ErrUnsupportedField, field)
	}

	column := string(field)

	return squirrel.
		Select(column).
		Distinct().
		From(leadsTable).
		Where(squirrel.NotEq{column: ""}).
		OrderBy(column).
		PlaceholderFormat(squirrel.Dollar), nil
}

func (r *leadRepository) Distinct(ctx context.Context, field domain.LeadField) ([]string, error) {
	builder, err := BuildDistinctQuery(field)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

func (r *leadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	query, args, err := squirrel.
		Select("status", "COUNT(*)").
		From(leadsTable).
		GroupBy("status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.LeadStatus]int, len(domain.LeadStatuses))
	for rows.Next() {
		var (
			status domain.LeadStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *leadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]*domain.Lead, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (*domain.Lead, error) {
	lead := &domain.Lead{}

	if err := row.Scan(
		&lead.ID,
		&lead.CompanyName,
		&lead.ContactName,
		&lead.Email,
		&lead.Phone,
		&lead.Website,
		&lead.Address,
		&lead.City,
		&lead.State,
		&lead.ZipCode,
		&lead.Country,
		&lead.Industry,
		&lead.BusinessType,
		&lead.EmployeeCount,
		&lead.AnnualRevenue,
		&lead.Description,
		&lead.Rating,
		&lead.Score,
		&lead.Status,
		&lead.Source,
		&lead.ContactedAt,
		&lead.RepliedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return lead, nil
}
