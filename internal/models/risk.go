package models

import "time"

// RiskProbability is the likelihood scale, 1 (Muy baja) to 5 (Muy alta).
type RiskProbability string

const (
	ProbabilityVeryLow  RiskProbability = "Muy baja"
	ProbabilityLow      RiskProbability = "Baja"
	ProbabilityMedium   RiskProbability = "Media"
	ProbabilityHigh     RiskProbability = "Alta"
	ProbabilityVeryHigh RiskProbability = "Muy alta"
)

// RiskImpact is the consequence scale, 1 (Muy bajo) to 5 (Muy alto).
type RiskImpact string

const (
	ImpactVeryLow  RiskImpact = "Muy bajo"
	ImpactLow      RiskImpact = "Bajo"
	ImpactMedium   RiskImpact = "Medio"
	ImpactHigh     RiskImpact = "Alto"
	ImpactVeryHigh RiskImpact = "Muy alto"
)

// RiskLevel buckets the inherent risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Bajo"
	RiskLevelModerate RiskLevel = "Moderado"
	RiskLevelHigh     RiskLevel = "Alto"
	RiskLevelExtreme  RiskLevel = "Extremo"
)

var probabilityWeights = map[RiskProbability]int{
	ProbabilityVeryLow:  1,
	ProbabilityLow:      2,
	ProbabilityMedium:   3,
	ProbabilityHigh:     4,
	ProbabilityVeryHigh: 5,
}

var impactWeights = map[RiskImpact]int{
	ImpactVeryLow:  1,
	ImpactLow:      2,
	ImpactMedium:   3,
	ImpactHigh:     4,
	ImpactVeryHigh: 5,
}

// Risk is an identified threat to one or more processes.
type Risk struct {
	ID          string          `db:"id" json:"id"`
	CompanyID   string          `db:"company_id" json:"company_id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description"`
	Probability RiskProbability `db:"probability" json:"probability"`
	Impact      RiskImpact      `db:"impact" json:"impact"`
	Status      bool            `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Score is probability times impact on 1..5 scales. Unknown values score 0.
func (r Risk) Score() int {
	return probabilityWeights[r.Probability] * impactWeights[r.Impact]
}

// Level maps Score to Bajo (1-4), Moderado (5-9), Alto (10-16) or Extremo (17-25).
// A zero score yields an empty level.
func (r Risk) Level() RiskLevel {
	return LevelForScore(r.Score())
}

// LevelForScore buckets a probability x impact score.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= 0:
		return ""
	case score <= 4:
		return RiskLevelLow
	case score <= 9:
		return RiskLevelModerate
	case score <= 16:
		return RiskLevelHigh
	default:
		return RiskLevelExtreme
	}
}

// RiskView adds computed fields for responses.
type RiskView struct {
	Risk
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// NewRiskView computes score and level for r.
func NewRiskView(r Risk) RiskView {
	return RiskView{Risk: r, Score: r.Score(), Level: r.Level()}
}

// RiskFilter captures filtering criteria for listing risks.
type RiskFilter struct {
	ListOptions
	CompanyID string
	ProcessID string
	Status    *bool
}
