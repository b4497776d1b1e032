package scoring

// Nota neutra para chaves desconhecidas ou ausentes
const neutralScore = 5.0

var industryScores = map[string]float64{
	"Technology":            9.5,
	"Healthcare":            9.0,
	"Finance":               8.5,
	"Professional Services": 8.0,
	"Manufacturing":         7.5,
	"Real Estate":           7.0,
	"Education":             6.5,
	"Retail":                6.0,
	"Food & Beverage":       5.5,
	"Health & Fitness":      5.0,
	"Design":                7.5,
	"Construction":          6.5,
	"Automotive":            6.0,
	"Entertainment":         4.5,
	"Energy":                8.0,
}

var businessTypeScores = map[string]float64{
	"B2B SaaS":              9.5,
	"B2B Services":          9.0,
	"B2C Retail":            6.0,
	"E-commerce":            7.5,
	"Professional Services": 8.5,
	"Healthcare Services":   8.0,
	"Financial Services":    8.5,
	"Manufacturing":         7.0,
	"Construction":          6.5,
	"Real Estate":           7.0,
	"Education":             6.5,
	"Non-profit":            4.0,
}

var locationScores = map[string]float64{
	"CA": 9.0,
	"NY": 8.5,
	"TX": 8.0,
	"FL": 7.5,
	"WA": 8.5,
	"MA": 8.0,
	"IL": 7.5,
	"OR": 7.0,
	"CO": 7.0,
	"NC": 6.5,
}

// step é um degrau da escada: valores >= min recebem score.
// A ordem é decrescente e o primeiro degrau atendido vence.
type step struct {
	min   float64
	score float64
}

// O degrau mais alto pontua menos que o segundo: contas muito grandes têm menor aderência.
var employeeSteps = []step{
	{min: 500, score: 8.0},
	{min: 250, score: 9.5},
	{min: 100, score: 9.0},
	{min: 50, score: 8.5},
	{min: 25, score: 7.5},
	{min: 10, score: 6.0},
	{min: 0, score: 4.0},
}

var revenueSteps = []step{
	{min: 50_000_000, score: 8.5},
	{min: 25_000_000, score: 9.5},
	{min: 10_000_000, score: 9.0},
	{min: 5_000_000, score: 8.0},
	{min: 2_500_000, score: 6.5},
	{min: 1_000_000, score: 5.0},
	{min: 0, score: 3.0},
}

func staircase(steps []step, v float64) float64 {
	for _, s := range steps {
		if v >= s.min {
			return s.score
		}
	}
	return steps[len(steps)-1].score
}

// Weights dos fatores. A soma é exatamente 1.0.
type Weights struct {
	Industry     float64
	BusinessType float64
	Size         float64
	Revenue      float64
	Location     float64
	DataQuality  float64
}

var DefaultWeights = Weights{
	Industry:     0.25,
	BusinessType: 0.20,
	Size:         0.15,
	Revenue:      0.20,
	Location:     0.10,
	DataQuality:  0.10,
}

func (w Weights) Sum() float64 {
	return w.Industry + w.BusinessType + w.Size + w.Revenue + w.Location + w.DataQuality
}

type band struct {
	min      float64
	category string
	desc     string
}

var categoryBands = []band{
	{min: 8.5, category: "Hot Lead", desc: "High-priority prospect with excellent fit"},
	{min: 7.0, category: "Warm Lead", desc: "Good prospect worth pursuing"},
	{min: 5.5, category: "Qualified Lead", desc: "Decent prospect with some potential"},
	{min: 4.0, category: "Cold Lead", desc: "Lower priority prospect"},
}

var poorFit = band{category: "Poor Fit", desc: "Not a good match for your product"}

const (
	SuggestionDataQuality = "Improve data quality by verifying contact information"
	SuggestionIndustry    = "Consider if this industry aligns with your target market"
	SuggestionSize        = "Company size may be too small for your solution"
	SuggestionRevenue     = "Revenue range may indicate limited budget"
	SuggestionPositive    = "This is a well-qualified lead - prioritize outreach"
)

const (
	dataQualityFloor = 7.0
	industryFloor    = 6.0
	sizeFloor        = 6.0
	revenueFloor     = 6.0
)
