package analytics

import (
	"time"

	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

// StaleLeads devolve, na ordem recebida, os leads fora do funil inicial sem contato recente.
// Um lead sem tentativa de contato e sem contacted_at é sempre considerado parado.
func StaleLeads(
	leads []*domain.Lead,
	activitiesByLead map[string][]*domain.Activity,
	thresholdDays int,
	now time.Time,
) []*domain.Lead {
	if thresholdDays <= 0 {
		thresholdDays = DefaultStaleThresholdDays
	}

	cutoff := now.AddDate(0, 0, -thresholdDays)
	stale := make([]*domain.Lead, 0)

	for _, lead := range leads {
		if lead.Status == domain.LeadStatusProspect {
			continue
		}

		if isStale(lead, latestContactAttempt(activitiesByLead[lead.ID]), cutoff) {
			stale = append(stale, lead)
		}
	}

	return stale
}

func isStale(lead *domain.Lead, lastAttempt *time.Time, cutoff time.Time) bool {
	if lastAttempt != nil {
		return lastAttempt.Before(cutoff)
	}

	if lead.ContactedAt != nil {
		return lead.ContactedAt.Before(cutoff)
	}

	return true
}

func latestContactAttempt(activities []*domain.Activity) *time.Time {
	var latest *time.Time

	for _, a := range activities {
		if a.Type != domain.ActivityTypeContactAttempt {
			continue
		}
		if latest == nil || a.Timestamp.After(*latest) {
			ts := a.Timestamp
			latest = &ts
		}
	}

	return latest
}
