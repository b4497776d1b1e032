package domain

// ScoreComponent é a contribuição de um fator para a nota final
type ScoreComponent struct {
	Score        float64 `json:"score"` // 0-10
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"` // Score * Weight
}

type ScoreBreakdown struct {
	Industry     ScoreComponent `json:"industry"`
	BusinessType ScoreComponent `json:"businessType"`
	Size         ScoreComponent `json:"size"`
	Revenue      ScoreComponent `json:"revenue"`
	Location     ScoreComponent `json:"location"`
	DataQuality  ScoreComponent `json:"dataQuality"`
}

// Total soma as contribuições, sem limitar ao intervalo 1-10
func (b ScoreBreakdown) Total() float64 {
	return b.Industry.Contribution +
		b.BusinessType.Contribution +
		b.Size.Contribution +
		b.Revenue.Contribution +
		b.Location.Contribution +
		b.DataQuality.Contribution
}

type ScoreCategory struct {
	Name        string `json:"category"`
	Description string `json:"description"`
}

type ScoreResult struct {
	LeadID      string         `json:"leadId,omitempty"`
	Overall     float64        `json:"overall"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Category    ScoreCategory  `json:"category"`
	Suggestions []string       `json:"suggestions"`
}
