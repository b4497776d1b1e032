// Package analytics agrega a população de leads e o histórico de atividades em indicadores.
package analytics

import (
	"math"
	"time"

	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

// DefaultStaleThresholdDays é usado quando o limite informado não é positivo
const DefaultStaleThresholdDays = 7

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ConversionFunnel conta os leads por status e calcula as taxas entre as etapas.
// Total considera apenas as etapas do funil; rejected é reportado à parte.
func ConversionFunnel(leads []*domain.Lead) domain.ConversionFunnel {
	var f domain.ConversionFunnel

	for _, lead := range leads {
		switch lead.Status {
		case domain.LeadStatusProspect:
			f.Prospects++
		case domain.LeadStatusContacted:
			f.Contacted++
		case domain.LeadStatusReplied:
			f.Replied++
		case domain.LeadStatusConverted:
			f.Converted++
		case domain.LeadStatusRejected:
			f.Rejected++
		}
	}

	f.Total = f.Prospects + f.Contacted + f.Replied + f.Converted
	f.ConversionRates = domain.ConversionRates{
		ProspectToContacted: rate(f.Contacted, f.Total),
		ContactedToReplied:  rate(f.Replied, f.Contacted),
		RepliedToConverted:  rate(f.Converted, f.Replied),
		OverallConversion:   rate(f.Converted, f.Total),
	}

	return f
}

// ActivityStats filtra as atividades na janela terminada em now
func ActivityStats(activities []*domain.Activity, timeframe domain.Timeframe, now time.Time) domain.ActivityStats {
	start := timeframe.Start(now)

	stats := domain.ActivityStats{
		Timeframe:        timeframe,
		ActivitiesByType: make(map[domain.ActivityType]int),
		ActivitiesByDay:  make(map[string]int),
	}

	for _, a := range activities {
		if a.Timestamp.Before(start) {
			continue
		}

		stats.TotalActivities++
		stats.ActivitiesByType[a.Type]++
		stats.ActivitiesByDay[utils.DateKey(a.Timestamp)]++

		switch a.Type {
		case domain.ActivityTypeStatusChange:
			stats.StatusChanges++
		case domain.ActivityTypeContactAttempt:
			stats.ContactAttempts++
		case domain.ActivityTypeNoteAdded:
			stats.NotesAdded++
		}
	}

	return stats
}

// Summarize calcula o resumo do painel; AverageScore fica em [0, 100]
func Summarize(leads []*domain.Lead) domain.LeadStats {
	stats := domain.LeadStats{Total: len(leads)}

	scoreSum := 0
	for _, lead := range leads {
		scoreSum += lead.Score

		switch lead.Status {
		case domain.LeadStatusProspect:
			stats.Prospects++
		case domain.LeadStatusContacted:
			stats.Contacted++
		case domain.LeadStatusReplied:
			stats.Replied++
		case domain.LeadStatusConverted:
			stats.Converted++
		}
	}

	if len(leads) > 0 {
		stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(leads))))
	}

	return stats
}
