package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func leadsWithStatuses(statuses ...domain.LeadStatus) []*domain.Lead {
	leads := make([]*domain.Lead, 0, len(statuses))
	for i, s := range statuses {
		leads = append(leads, &domain.Lead{ID: string(rune('a' + i)), Status: s})
	}
	return leads
}

func TestConversionFunnel_Empty(t *testing.T) {
	f := ConversionFunnel(nil)

	assert.Equal(t, domain.ConversionFunnel{}, f)
}

func TestConversionFunnel_Rates(t *testing.T) {
	leads := leadsWithStatuses(
		domain.LeadStatusProspect,
		domain.LeadStatusProspect,
		domain.LeadStatusContacted,
		domain.LeadStatusContacted,
		domain.LeadStatusContacted,
		domain.LeadStatusReplied,
		domain.LeadStatusConverted,
		domain.LeadStatusRejected,
	)

	f := ConversionFunnel(leads)

	assert.Equal(t, 2, f.Prospects)
	assert.Equal(t, 3, f.Contacted)
	assert.Equal(t, 1, f.Replied)
	assert.Equal(t, 1, f.Converted)
	assert.Equal(t, 1, f.Rejected)
	assert.Equal(t, 7, f.Total)

	assert.InDelta(t, 3.0/7.0*100, f.ConversionRates.ProspectToContacted, 1e-9)
	assert.InDelta(t, 1.0/3.0*100, f.ConversionRates.ContactedToReplied, 1e-9)
	assert.InDelta(t, 100.0, f.ConversionRates.RepliedToConverted, 1e-9)
	assert.InDelta(t, 1.0/7.0*100, f.ConversionRates.OverallConversion, 1e-9)

	rounded := f.ConversionRates.Rounded()
	assert.Equal(t, 42.9, rounded.ProspectToContacted)
	assert.Equal(t, 33.3, rounded.ContactedToReplied)
	assert.Equal(t, 14.3, rounded.OverallConversion)
}

func TestConversionFunnel_ZeroDenominators(t *testing.T) {
	f := ConversionFunnel(leadsWithStatuses(domain.LeadStatusProspect, domain.LeadStatusRejected))

	assert.Equal(t, 1, f.Total)
	assert.Zero(t, f.ConversionRates.ProspectToContacted)
	assert.Zero(t, f.ConversionRates.ContactedToReplied)
	assert.Zero(t, f.ConversionRates.RepliedToConverted)
	assert.Zero(t, f.ConversionRates.OverallConversion)
}

func TestActivityStats_Windows(t *testing.T) {
	activities := []*domain.Activity{
		{Type: domain.ActivityTypeStatusChange, Timestamp: now.Add(-2 * time.Hour)},
		{Type: domain.ActivityTypeContactAttempt, Timestamp: now.Add(-23 * time.Hour)},
		{Type: domain.ActivityTypeNoteAdded, Timestamp: now.AddDate(0, 0, -3)},
		{Type: domain.ActivityTypeEmailSent, Timestamp: now.AddDate(0, 0, -7)},
		{Type: domain.ActivityTypeCallMade, Timestamp: now.AddDate(0, 0, -20)},
		{Type: domain.ActivityTypeMeetingScheduled, Timestamp: now.AddDate(0, -2, 0)},
	}

	tests := []struct {
		timeframe domain.Timeframe
		total     int
	}{
		{timeframe: domain.TimeframeDay, total: 2},
		{timeframe: domain.TimeframeWeek, total: 4}, // limite inclusivo
		{timeframe: domain.TimeframeMonth, total: 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.timeframe), func(t *testing.T) {
			stats := ActivityStats(activities, tt.timeframe, now)
			assert.Equal(t, tt.total, stats.TotalActivities)
			assert.Equal(t, tt.timeframe, stats.Timeframe)

			sumByDay := 0
			for _, c := range stats.ActivitiesByDay {
				sumByDay += c
			}
			assert.Equal(t, tt.total, sumByDay)
		})
	}

	week := ActivityStats(activities, domain.TimeframeWeek, now)
	assert.Equal(t, 1, week.StatusChanges)
	assert.Equal(t, 1, week.ContactAttempts)
	assert.Equal(t, 1, week.NotesAdded)
	assert.Equal(t, 1, week.ActivitiesByType[domain.ActivityTypeEmailSent])
	assert.Equal(t, 1, week.ActivitiesByDay["2024-06-15"])
	assert.Equal(t, 1, week.ActivitiesByDay["2024-06-14"])
	assert.Equal(t, 1, week.ActivitiesByDay["2024-06-08"])
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, domain.LeadStats{}, Summarize(nil))

	leads := []*domain.Lead{
		{Status: domain.LeadStatusProspect, Score: 88},
		{Status: domain.LeadStatusContacted, Score: 71},
		{Status: domain.LeadStatusReplied, Score: 60},
		{Status: domain.LeadStatusRejected, Score: 40},
	}

	stats := Summarize(leads)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Prospects)
	assert.Equal(t, 1, stats.Contacted)
	assert.Equal(t, 1, stats.Replied)
	assert.Equal(t, 0, stats.Converted)
	assert.Equal(t, 65, stats.AverageScore) // round(259 / 4)
}

func TestStaleLeads(t *testing.T) {
	old := now.AddDate(0, 0, -10)
	recent := now.AddDate(0, 0, -2)

	leads := []*domain.Lead{
		{ID: "prospect", Status: domain.LeadStatusProspect},
		{ID: "recent-attempt", Status: domain.LeadStatusContacted, ContactedAt: &old},
		{ID: "old-attempt", Status: domain.LeadStatusReplied, ContactedAt: &recent},
		{ID: "old-contacted", Status: domain.LeadStatusContacted, ContactedAt: &old},
		{ID: "recent-contacted", Status: domain.LeadStatusContacted, ContactedAt: &recent},
		{ID: "never-contacted", Status: domain.LeadStatusConverted},
	}

	byLead := map[string][]*domain.Activity{
		"recent-attempt": {
			{Type: domain.ActivityTypeContactAttempt, Timestamp: old},
			{Type: domain.ActivityTypeContactAttempt, Timestamp: recent},
		},
		"old-attempt": {
			{Type: domain.ActivityTypeContactAttempt, Timestamp: old},
			{Type: domain.ActivityTypeNoteAdded, Timestamp: recent},
		},
	}

	stale := StaleLeads(leads, byLead, 7, now)

	ids := make([]string, 0, len(stale))
	for _, l := range stale {
		ids = append(ids, l.ID)
		assert.NotEqual(t, domain.LeadStatusProspect, l.Status)
	}
	assert.Equal(t, []string{"old-attempt", "old-contacted", "never-contacted"}, ids)
}

func TestStaleLeads_DefaultThreshold(t *testing.T) {
	eightDaysAgo := now.AddDate(0, 0, -8)
	sixDaysAgo := now.AddDate(0, 0, -6)

	leads := []*domain.Lead{
		{ID: "a", Status: domain.LeadStatusContacted, ContactedAt: &eightDaysAgo},
		{ID: "b", Status: domain.LeadStatusContacted, ContactedAt: &sixDaysAgo},
	}

	stale := StaleLeads(leads, nil, 0, now)

	require.Len(t, stale, 1)
	assert.Equal(t, "a", stale[0].ID)
}

func TestStaleLeads_NeverIncludesProspects(t *testing.T) {
	leads := leadsWithStatuses(domain.LeadStatusProspect, domain.LeadStatusProspect)

	assert.Empty(t, StaleLeads(leads, nil, 1, now))
}
