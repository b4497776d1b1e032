package domain

import (
	"errors"
	"time"

	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

type ConversionRates struct {
	ProspectToContacted float64 `json:"prospectToContacted"`
	ContactedToReplied  float64 `json:"contactedToReplied"`
	RepliedToConverted  float64 `json:"repliedToConverted"`
	OverallConversion   float64 `json:"overallConversion"`
}

// Rounded retorna as taxas com uma casa decimal, formato esperado pelos consumidores
func (r ConversionRates) Rounded() ConversionRates {
	return ConversionRates{
		ProspectToContacted: utils.RoundWithOneDecimalPlace(r.ProspectToContacted),
		ContactedToReplied:  utils.RoundWithOneDecimalPlace(r.ContactedToReplied),
		RepliedToConverted:  utils.RoundWithOneDecimalPlace(r.RepliedToConverted),
		OverallConversion:   utils.RoundWithOneDecimalPlace(r.OverallConversion),
	}
}

type ConversionFunnel struct {
	Prospects       int             `json:"prospects"`
	Contacted       int             `json:"contacted"`
	Replied         int             `json:"replied"`
	Converted       int             `json:"converted"`
	Rejected        int             `json:"rejected"`
	Total           int             `json:"total"` // Prospects + Contacted + Replied + Converted
	ConversionRates ConversionRates `json:"conversionRates"`
}

type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// ParseTimeframe converte o parâmetro recebido; vazio equivale a week
func ParseTimeframe(value string) (Timeframe, error) {
	switch Timeframe(value) {
	case "":
		return TimeframeWeek, nil
	case TimeframeDay, TimeframeWeek, TimeframeMonth:
		return Timeframe(value), nil
	}
	return "", ErrInvalidTimeframe
}

// Start calcula o início da janela terminada em now
func (t Timeframe) Start(now time.Time) time.Time {
	switch t {
	case TimeframeDay:
		return now.AddDate(0, 0, -1)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

type ActivityStats struct {
	Timeframe        Timeframe            `json:"timeframe"`
	TotalActivities  int                  `json:"totalActivities"`
	StatusChanges    int                  `json:"statusChanges"`
	ContactAttempts  int                  `json:"contactAttempts"`
	NotesAdded       int                  `json:"notesAdded"`
	ActivitiesByType map[ActivityType]int `json:"activitiesByType"`
	ActivitiesByDay  map[string]int       `json:"activitiesByDay"` // Chave no formato YYYY-MM-DD (UTC)
}

// Overview agrega os indicadores do painel de análise
type Overview struct {
	Stats          LeadStats        `json:"stats"`
	Funnel         ConversionFunnel `json:"funnel"`
	WeeklyActivity ActivityStats    `json:"weeklyActivity"`
	StaleLeads     int              `json:"staleLeads"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
