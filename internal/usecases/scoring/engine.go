// Package scoring calcula a nota de qualificação de um lead a partir dos seus atributos.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vfg2006/lead-qualifier-api/internal/domain"
	"github.com/vfg2006/lead-qualifier-api/pkg/utils"
)

const (
	MinScore = 1.0
	MaxScore = 10.0
)

type Scorer interface {
	Score(lead *domain.Lead) domain.ScoreResult
	Breakdown(lead *domain.Lead) domain.ScoreBreakdown
	Category(score float64) domain.ScoreCategory
	SuggestImprovements(lead *domain.Lead) []string
	ScoreLeads(leads []*domain.Lead) []*domain.Lead
	Apply(lead *domain.Lead)
}

// Engine é imutável após a construção e pode ser compartilhado entre goroutines
type Engine struct {
	industries    map[string]float64
	businessTypes map[string]float64
	locations     map[string]float64
	weights       Weights
}

func NewEngine() *Engine {
	return &Engine{
		industries:    industryScores,
		businessTypes: businessTypeScores,
		locations:     locationScores,
		weights:       DefaultWeights,
	}
}

func lookup(table map[string]float64, key string) float64 {
	if score, ok := table[key]; ok {
		return score
	}
	return neutralScore
}

func component(score, weight float64) domain.ScoreComponent {
	return domain.ScoreComponent{
		Score:        score,
		Weight:       weight,
		Contribution: score * weight,
	}
}

func (e *Engine) Breakdown(lead *domain.Lead) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Industry:     component(lookup(e.industries, lead.Industry), e.weights.Industry),
		BusinessType: component(lookup(e.businessTypes, lead.BusinessType), e.weights.BusinessType),
		Size:         component(staircase(employeeSteps, float64(lead.EmployeeCount)), e.weights.Size),
		Revenue:      component(staircase(revenueSteps, lead.AnnualRevenue), e.weights.Revenue),
		Location:     component(lookup(e.locations, lead.State), e.weights.Location),
		DataQuality:  component(DataQuality(lead), e.weights.DataQuality),
	}
}

// Overall retorna a soma ponderada limitada a [1, 10]
func (e *Engine) Overall(lead *domain.Lead) float64 {
	return utils.Clamp(e.Breakdown(lead).Total(), MinScore, MaxScore)
}

func (e *Engine) Score(lead *domain.Lead) domain.ScoreResult {
	breakdown := e.Breakdown(lead)
	overall := utils.Clamp(breakdown.Total(), MinScore, MaxScore)

	return domain.ScoreResult{
		LeadID:      lead.ID,
		Overall:     overall,
		Breakdown:   breakdown,
		Category:    e.Category(overall),
		Suggestions: suggestions(breakdown),
	}
}

func (e *Engine) Category(score float64) domain.ScoreCategory {
	for _, b := range categoryBands {
		if score >= b.min {
			return domain.ScoreCategory{Name: b.category, Description: b.desc}
		}
	}
	return domain.ScoreCategory{Name: poorFit.category, Description: poorFit.desc}
}

func (e *Engine) SuggestImprovements(lead *domain.Lead) []string {
	return suggestions(e.Breakdown(lead))
}

func suggestions(b domain.ScoreBreakdown) []string {
	var out []string

	if b.DataQuality.Score < dataQualityFloor {
		out = append(out, SuggestionDataQuality)
	}
	if b.Industry.Score < industryFloor {
		out = append(out, SuggestionIndustry)
	}
	if b.Size.Score < sizeFloor {
		out = append(out, SuggestionSize)
	}
	if b.Revenue.Score < revenueFloor {
		out = append(out, SuggestionRevenue)
	}

	if len(out) == 0 {
		return []string{SuggestionPositive}
	}

	return out
}

// ScoreLeads devolve cópias dos leads com Rating e Score preenchidos, sem alterar a entrada
func (e *Engine) ScoreLeads(leads []*domain.Lead) []*domain.Lead {
	scored := make([]*domain.Lead, 0, len(leads))
	for _, lead := range leads {
		cp := *lead
		e.Apply(&cp)
		scored = append(scored, &cp)
	}
	return scored
}

// Apply atualiza Rating e Score do lead com a nota atual
func (e *Engine) Apply(lead *domain.Lead) {
	lead.Rating = e.Overall(lead)
	lead.Score = ToPercent(lead.Rating)
}

// ToPercent converte a nota 1-10 para a escala 0-100
func ToPercent(rating float64) int {
	return int(math.Round(rating * 10))
}

const dataQualityMaxPoints = 10.0

// DataQuality pontua a completude dos dados de contato numa escala de 0 a 10
func DataQuality(lead *domain.Lead) float64 {
	points := 0.0

	if strings.Contains(lead.Website, "http") {
		points += 2
	}
	if strings.Contains(lead.Email, "@") {
		points += 2
	}
	if utf8.RuneCountInString(lead.Phone) >= 10 {
		points += 2
	}
	if lead.ContactName != "" {
		points++
	}
	if lead.Address != "" {
		points++
	}
	if utf8.RuneCountInString(lead.ZipCode) >= 5 {
		points++
	}
	if utf8.RuneCountInString(lead.Description) > 20 {
		points++
	}

	return points / dataQualityMaxPoints * 10
}
