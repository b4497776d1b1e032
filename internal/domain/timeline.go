package domain

import "time"

type StatusHistoryEntry struct {
	Status       LeadStatus `json:"status"`
	EnteredAt    time.Time  `json:"timestamp"` // Momento em que o lead entrou no status
	DurationDays *int       `json:"duration,omitempty"` // nil para o status atual (em aberto)
}

// Timeline é derivada sob demanda a partir do lead e do histórico de atividades
type Timeline struct {
	LeadID        string               `json:"leadId"`
	Activities    []*Activity          `json:"activities"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`
}
