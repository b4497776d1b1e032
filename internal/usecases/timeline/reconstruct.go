// Package timeline reconstrói o histórico de status de um lead a partir das atividades.
//
// A reconstrução é uma aproximação: pressupõe que toda transição foi registrada como
// status_change. Lacunas no histórico tornam o status mais antigo incorreto.
// O status atual é a última entrada do histórico e fica em aberto, sem duração.
package timeline

import (
	"time"

	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/internal/usecases/tracking"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

// Reconstruct não altera o slice recebido
func Reconstruct(lead *domain.Lead, activities []*domain.Activity) domain.Timeline {
	feed := make([]*domain.Activity, len(activities))
	copy(feed, activities)
	tracking.SortNewestFirst(feed)

	changes := make([]*domain.Activity, 0)
	for _, a := range feed {
		if a.Type == domain.ActivityTypeStatusChange && a.OldValue != "" {
			changes = append(changes, a)
		}
	}

	// Da mais recente para a mais antiga
	history := make([]domain.StatusHistoryEntry, 0, len(changes)+1)
	history = append(history, domain.StatusHistoryEntry{
		Status:    lead.Status,
		EnteredAt: lead.UpdatedAt,
	})

	for i, change := range changes {
		exitedAt := change.Timestamp

		enteredAt := lead.CreatedAt
		if i+1 < len(changes) {
			enteredAt = changes[i+1].Timestamp
		}

		history = append(history, domain.StatusHistoryEntry{
			Status:       domain.LeadStatus(change.OldValue),
			EnteredAt:    enteredAt,
			DurationDays: durationPtr(enteredAt, exitedAt),
		})
	}

	reverse(history)

	return domain.Timeline{
		LeadID:        lead.ID,
		Activities:    feed,
		StatusHistory: history,
	}
}

func durationPtr(from, to time.Time) *int {
	days := utils.DaysCeil(from, to)
	return &days
}

func reverse(entries []domain.StatusHistoryEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
