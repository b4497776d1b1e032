package domain

import "time"

type ActivityType string

const (
	ActivityTypeStatusChange     ActivityType = "status_change"
	ActivityTypeNoteAdded        ActivityType = "note_added"
	ActivityTypeContactAttempt   ActivityType = "contact_attempt"
	ActivityTypeEmailSent        ActivityType = "email_sent"
	ActivityTypeCallMade         ActivityType = "call_made"
	ActivityTypeMeetingScheduled ActivityType = "meeting_scheduled"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeStatusChange, ActivityTypeNoteAdded, ActivityTypeContactAttempt,
		ActivityTypeEmailSent, ActivityTypeCallMade, ActivityTypeMeetingScheduled:
		return true
	}
	return false
}

type ContactMethod string

const (
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodLinkedIn ContactMethod = "linkedin"
)

func (m ContactMethod) IsValid() bool {
	switch m {
	case ContactMethodEmail, ContactMethodPhone, ContactMethodLinkedIn:
		return true
	}
	return false
}

// Activity é um evento imutável registrado para um lead
type Activity struct {
	ID          string       `json:"id"`
	LeadID      string       `json:"lead_id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	OldValue    string       `json:"old_value,omitempty"` // Apenas status_change
	NewValue    string       `json:"new_value,omitempty"` // Apenas status_change
	Timestamp   time.Time    `json:"timestamp"`
	ActorID     string       `json:"actor_id,omitempty"`
	Sequence    int64        `json:"-"` // Ordem de inserção, desempata timestamps iguais
}

// NewerThan define a ordem do feed: timestamp mais recente primeiro e,
// em caso de empate, a inserção mais recente primeiro.
func (a *Activity) NewerThan(other *Activity) bool {
	if !a.Timestamp.Equal(other.Timestamp) {
		return a.Timestamp.After(other.Timestamp)
	}
	return a.Sequence > other.Sequence
}

type NoteRequest struct {
	Note string `json:"note" validate:"notblank,max=10000"`
}

type ContactAttemptRequest struct {
	Method ContactMethod `json:"method" validate:"required,oneof=email phone linkedin"`
	Notes  string        `json:"notes" validate:"max=2000"`
}

type RecordActivityRequest struct {
	Type        ActivityType `json:"type" validate:"required,oneof=email_sent call_made meeting_scheduled"`
	Description string       `json:"description" validate:"required,max=2000"`
}
