package repository

//go:generate mockgen -source=activity.go -destination=mocks/activity_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

const activitiesTable = "lead_activities"

var activityColumns = []string{
	"seq",
	"id",
	"lead_id",
	"type",
	"description",
	"old_value",
	"new_value",
	"occurred_at",
	"actor_id",
}

// Ordem do feed: mais recente primeiro, empates pela ordem de inserção
var activityOrder = []string{"occurred_at DESC", "seq DESC"}

// ActivityStore é append-only: não existe atualização nem remoção
type ActivityStore interface {
	Append(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	ListForLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
	ListSince(ctx context.Context, from time.Time) ([]*domain.Activity, error)
	ListForLeads(ctx context.Context, leadIDs []string) (map[string][]*domain.Activity, error)
}

type activityStore struct {
	conn *postgres.Connection
}

func NewActivityStore(conn *postgres.Connection) ActivityStore {
	return &activityStore{
		conn: conn,
	}
}

func selectActivities() squirrel.SelectBuilder {
	return squirrel.
		Select(activityColumns...).
		From(activitiesTable).
		OrderBy(activityOrder...).
		PlaceholderFormat(squirrel.Dollar)
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func (s *activityStore) Append(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	query, args, err := squirrel.
		Insert(activitiesTable).
		Columns("id", "lead_id", "type", "description", "old_value", "new_value", "occurred_at", "actor_id").
		Values(
			activity.ID,
			activity.LeadID,
			activity.Type,
			activity.Description,
			nullable(activity.OldValue),
			nullable(activity.NewValue),
			activity.Timestamp,
			nullable(activity.ActorID),
		).
		Suffix("RETURNING seq").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	stored := *activity
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&stored.Sequence); err != nil {
		return nil, fmt.Errorf("failed to append activity for lead %s: %w", activity.LeadID, err)
	}

	return &stored, nil
}

func (s *activityStore) ListForLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	query, args, err := selectActivities().
		Where(squirrel.Eq{"lead_id": leadID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.queryActivities(ctx, query, args...)
}

func (s *activityStore) ListSince(ctx context.Context, from time.Time) ([]*domain.Activity, error) {
	query, args, err := selectActivities().
		Where(squirrel.GtOrEq{"occurred_at": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.queryActivities(ctx, query, args...)
}

func (s *activityStore) ListForLeads(ctx context.Context, leadIDs []string) (map[string][]*domain.Activity, error) {
	byLead := make(map[string][]*domain.Activity, len(leadIDs))
	if len(leadIDs) == 0 {
		return byLead, nil
	}

	query, args, err := selectActivities().
		Where(squirrel.Expr("lead_id = ANY(?)", pq.Array(leadIDs))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	activities, err := s.queryActivities(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	for _, a := range activities {
		byLead[a.LeadID] = append(byLead[a.LeadID], a)
	}

	return byLead, nil
}

func (s *activityStore) queryActivities(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		var (
			a                         domain.Activity
			oldValue, newValue, actor sql.NullString
		)

		if err := rows.Scan(
			&a.Sequence,
			&a.ID,
			&a.LeadID,
			&a.Type,
			&a.Description,
			&oldValue,
			&newValue,
			&a.Timestamp,
			&actor,
		); err != nil {
			return nil, err
		}

		a.OldValue = oldValue.String
		a.NewValue = newValue.String
		a.ActorID = actor.String
		activities = append(activities, &a)
	}

	return activities, rows.Err()
}
