// Package tracking mantém o histórico append-only de atividades dos leads.
package tracking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/infrastructure/repository"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

// Tamanho máximo da nota reproduzida na descrição
const notePreviewLength = 100

type ActivityLedger interface {
	Append(ctx context.Context, activity domain.Activity) (*domain.Activity, error)
	ForLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
	Since(ctx context.Context, from time.Time) ([]*domain.Activity, error)
	ForLeads(ctx context.Context, leadIDs []string) (map[string][]*domain.Activity, error)
	RecordStatusChange(ctx context.Context, leadID string, oldStatus, newStatus domain.LeadStatus, actorID string) (*domain.Activity, error)
	RecordContactAttempt(ctx context.Context, leadID string, method domain.ContactMethod, notes, actorID string) (*domain.Activity, error)
	RecordNote(ctx context.Context, leadID, note, actorID string) (*domain.Activity, error)
	Record(ctx context.Context, leadID string, activityType domain.ActivityType, description, actorID string) (*domain.Activity, error)
}

// Observer é notificado a cada atividade gravada
type Observer func(activity *domain.Activity)

type Ledger struct {
	store    repository.ActivityStore
	now      func() time.Time
	newID    func() (string, error)
	observer Observer
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

func WithObserver(observer Observer) Option {
	return func(l *Ledger) {
		l.observer = observer
	}
}

func NewLedger(store repository.ActivityStore, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: utils.GenerateID,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Append é o único ponto de escrita: atribui id e timestamp e persiste no store
func (l *Ledger) Append(ctx context.Context, activity domain.Activity) (*domain.Activity, error) {
	if activity.LeadID == "" {
		return nil, ErrLeadIDRequired
	}

	if !activity.Type.IsValid() {
		return nil, errors.Wrapf(ErrInvalidActivityType, "type %q", activity.Type)
	}

	id, err := l.newID()
	if err != nil {
		return nil, errors.Wrap(ErrGenerateID, err.Error())
	}

	activity.ID = id
	activity.Timestamp = l.now().UTC()

	stored, err := l.store.Append(ctx, &activity)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"lead_id": activity.LeadID,
			"type":    activity.Type,
			"error":   err.Error(),
		}).Error("Erro ao gravar atividade")
		return nil, errors.Wrap(ErrAppendActivity, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"lead_id":     stored.LeadID,
		"activity_id": stored.ID,
		"type":        stored.Type,
	}).Debug("Atividade registrada")

	if l.observer != nil {
		l.observer(stored)
	}

	return stored, nil
}

func (l *Ledger) ForLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	if leadID == "" {
		return nil, ErrLeadIDRequired
	}

	activities, err := l.store.ListForLead(ctx, leadID)
	if err != nil {
		return nil, errors.Wrap(ErrFetchActivities, err.Error())
	}

	SortNewestFirst(activities)

	return activities, nil
}

func (l *Ledger) Since(ctx context.Context, from time.Time) ([]*domain.Activity, error) {
	activities, err := l.store.ListSince(ctx, from)
	if err != nil {
		return nil, errors.Wrap(ErrFetchActivities, err.Error())
	}

	SortNewestFirst(activities)

	return activities, nil
}

func (l *Ledger) ForLeads(ctx context.Context, leadIDs []string) (map[string][]*domain.Activity, error) {
	byLead, err := l.store.ListForLeads(ctx, leadIDs)
	if err != nil {
		return nil, errors.Wrap(ErrFetchActivities, err.Error())
	}

	for _, activities := range byLead {
		SortNewestFirst(activities)
	}

	return byLead, nil
}

func (l *Ledger) RecordStatusChange(
	ctx context.Context,
	leadID string,
	oldStatus, newStatus domain.LeadStatus,
	actorID string,
) (*domain.Activity, error) {
	if !oldStatus.IsValid() || !newStatus.IsValid() {
		return nil, errors.Wrapf(ErrInvalidStatus, "%q -> %q", oldStatus, newStatus)
	}

	return l.Append(ctx, domain.Activity{
		LeadID:      leadID,
		Type:        domain.ActivityTypeStatusChange,
		Description: StatusChangeDescription(oldStatus, newStatus),
		OldValue:    string(oldStatus),
		NewValue:    string(newStatus),
		ActorID:     actorID,
	})
}

func (l *Ledger) RecordContactAttempt(
	ctx context.Context,
	leadID string,
	method domain.ContactMethod,
	notes, actorID string,
) (*domain.Activity, error) {
	if !method.IsValid() {
		return nil, errors.Wrapf(ErrInvalidContactMethod, "method %q", method)
	}

	return l.Append(ctx, domain.Activity{
		LeadID:      leadID,
		Type:        domain.ActivityTypeContactAttempt,
		Description: ContactAttemptDescription(method, notes),
		ActorID:     actorID,
	})
}

func (l *Ledger) RecordNote(ctx context.Context, leadID, note, actorID string) (*domain.Activity, error) {
	if strings.TrimSpace(note) == "" {
		return nil, ErrEmptyNote
	}

	return l.Append(ctx, domain.Activity{
		LeadID:      leadID,
		Type:        domain.ActivityTypeNoteAdded,
		Description: NoteDescription(note),
		ActorID:     actorID,
	})
}

// Record grava atividades genéricas (email enviado, ligação, reunião)
func (l *Ledger) Record(
	ctx context.Context,
	leadID string,
	activityType domain.ActivityType,
	description, actorID string,
) (*domain.Activity, error) {
	switch activityType {
	case domain.ActivityTypeEmailSent, domain.ActivityTypeCallMade, domain.ActivityTypeMeetingScheduled:
	default:
		return nil, errors.Wrapf(ErrInvalidActivityType, "type %q has a dedicated recorder or is unknown", activityType)
	}

	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	return l.Append(ctx, domain.Activity{
		LeadID:      leadID,
		Type:        activityType,
		Description: description,
		ActorID:     actorID,
	})
}

func StatusChangeDescription(oldStatus, newStatus domain.LeadStatus) string {
	return fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
}

func ContactAttemptDescription(method domain.ContactMethod, notes string) string {
	description := fmt.Sprintf("Contact attempt via %s", method)
	if notes = strings.TrimSpace(notes); notes != "" {
		description += ": " + notes
	}
	return description
}

// NoteDescription trunca a nota em 100 caracteres (runas) e acrescenta reticências
func NoteDescription(note string) string {
	runes := []rune(note)
	if len(runes) <= notePreviewLength {
		return "Note added: " + note
	}
	return "Note added: " + string(runes[:notePreviewLength]) + "..."
}

// SortNewestFirst ordena pelo timestamp decrescente; empates pela ordem de inserção decrescente
func SortNewestFirst(activities []*domain.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].NewerThan(activities[j])
	})
}

var _ ActivityLedger = (*Ledger)(nil)
