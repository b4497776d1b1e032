package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

type staticCounter struct {
	counts map[domain.LeadStatus]int
	err    error
}

func (s staticCounter) CountByStatus(context.Context) (map[domain.LeadStatus]int, error) {
	return s.counts, s.err
}

func TestFunnelCollector(t *testing.T) {
	collector := NewFunnelCollector(staticCounter{counts: map[domain.LeadStatus]int{
		domain.LeadStatusProspect:  4,
		domain.LeadStatusConverted: 1,
	}})

	expected := `
# HELP lead_leads_by_status Current number of leads per pipeline status
# TYPE lead_leads_by_status gauge
lead_leads_by_status{status="contacted"} 0
lead_leads_by_status{status="converted"} 1
lead_leads_by_status{status="prospect"} 4
lead_leads_by_status{status="rejected"} 0
lead_leads_by_status{status="replied"} 0
`

	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestFunnelCollector_ErrorEmitsNothing(t *testing.T) {
	collector := NewFunnelCollector(staticCounter{err: errors.New("db down")})

	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(nil)

	r.StatusChanged(domain.LeadStatusProspect, domain.LeadStatusContacted)
	r.StatusChanged(domain.LeadStatusProspect, domain.LeadStatusContacted)
	r.ActivityRecorded(&domain.Activity{Type: domain.ActivityTypeNoteAdded})
	r.StaleLeads(3)
	r.LeadScored(8.75)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.statusChanges.WithLabelValues("prospect", "contacted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.activitiesByType.WithLabelValues("note_added")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.staleLeads))
	assert.Equal(t, 1, testutil.CollectAndCount(r.scores))

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
