package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

func statusChange(id string, at time.Time, seq int64, from, to domain.LeadStatus) *domain.Activity {
	return &domain.Activity{
		ID:        id,
		LeadID:    "lead-1",
		Type:      domain.ActivityTypeStatusChange,
		OldValue:  string(from),
		NewValue:  string(to),
		Timestamp: at,
		Sequence:  seq,
	}
}

func TestReconstruct_SingleChange(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(50 * time.Hour)

	lead := &domain.Lead{
		ID:        "lead-1",
		Status:    domain.LeadStatusReplied,
		CreatedAt: t1,
		UpdatedAt: t2,
	}

	tl := Reconstruct(lead, []*domain.Activity{
		statusChange("a1", t2, 1, domain.LeadStatusContacted, domain.LeadStatusReplied),
	})

	require.Len(t, tl.StatusHistory, 2)

	contacted := tl.StatusHistory[0]
	assert.Equal(t, domain.LeadStatusContacted, contacted.Status)
	assert.Equal(t, t1, contacted.EnteredAt)
	require.NotNil(t, contacted.DurationDays)
	assert.Equal(t, 3, *contacted.DurationDays) // ceil(50h / 24h)

	replied := tl.StatusHistory[1]
	assert.Equal(t, domain.LeadStatusReplied, replied.Status)
	assert.Equal(t, t2, replied.EnteredAt)
	assert.Nil(t, replied.DurationDays)
}

func TestReconstruct_FullFunnel(t *testing.T) {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	toContacted := created.Add(24 * time.Hour)
	toReplied := toContacted.Add(72 * time.Hour)
	toConverted := toReplied.Add(12 * time.Hour)

	lead := &domain.Lead{
		ID:        "lead-1",
		Status:    domain.LeadStatusConverted,
		CreatedAt: created,
		UpdatedAt: toConverted,
	}

	// Entrada fora de ordem e com atividades de outros tipos
	activities := []*domain.Activity{
		statusChange("a1", toContacted, 1, domain.LeadStatusProspect, domain.LeadStatusContacted),
		{ID: "n1", Type: domain.ActivityTypeNoteAdded, Timestamp: toContacted.Add(time.Hour), Sequence: 2},
		statusChange("a3", toConverted, 4, domain.LeadStatusReplied, domain.LeadStatusConverted),
		statusChange("a2", toReplied, 3, domain.LeadStatusContacted, domain.LeadStatusReplied),
	}

	tl := Reconstruct(lead, activities)

	require.Len(t, tl.StatusHistory, 4)

	statuses := make([]domain.LeadStatus, 0, 4)
	for _, e := range tl.StatusHistory {
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []domain.LeadStatus{
		domain.LeadStatusProspect,
		domain.LeadStatusContacted,
		domain.LeadStatusReplied,
		domain.LeadStatusConverted,
	}, statuses)

	assert.Equal(t, 1, *tl.StatusHistory[0].DurationDays)
	assert.Equal(t, 3, *tl.StatusHistory[1].DurationDays)
	assert.Equal(t, 1, *tl.StatusHistory[2].DurationDays)
	assert.Nil(t, tl.StatusHistory[3].DurationDays)

	assert.Equal(t, "a3", tl.Activities[0].ID)
	assert.Equal(t, "a1", tl.Activities[len(tl.Activities)-1].ID)

	// A entrada não foi reordenada
	assert.Equal(t, "a1", activities[0].ID)
}

func TestReconstruct_NoStatusChanges(t *testing.T) {
	now := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	lead := &domain.Lead{ID: "lead-1", Status: domain.LeadStatusProspect, CreatedAt: now, UpdatedAt: now}

	tl := Reconstruct(lead, nil)

	require.Len(t, tl.StatusHistory, 1)
	assert.Equal(t, domain.LeadStatusProspect, tl.StatusHistory[0].Status)
	assert.Nil(t, tl.StatusHistory[0].DurationDays)
	assert.Empty(t, tl.Activities)
}
