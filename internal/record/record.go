package record

import (
	"time"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
)

// Clock supplies the current instant for records created without an
// explicit timestamp. Injected so tests stay deterministic.
type Clock func() time.Time

// Reading is a single blood sugar measurement in mg/dL. Levels are not
// range checked at recording time; the trend analyzer rejects
// non-finite values before computing.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	Level     float64   `json:"level"`
}

// Meal records one meal and its optional measurement context.
// FoodItems and ServingSizes are parallel sequences.
type Meal struct {
	Timestamp        time.Time          `json:"timestamp"`
	Name             string             `json:"meal_name"`
	CarbGrams        float64            `json:"carbohydrate_content"`
	FoodItems        []string           `json:"food_items,omitempty"`
	ServingSizes     []float64          `json:"serving_sizes,omitempty"`
	NutritionalInfo  map[string]float64 `json:"nutritional_info,omitempty"`
	BloodSugarBefore *float64           `json:"blood_sugar_before,omitempty"`
	BloodSugarAfter  *float64           `json:"blood_sugar_after,omitempty"`
	DurationMinutes  int                `json:"duration_minutes,omitempty"`
}

// NewMeal creates a validated meal record
func NewMeal(name string, carbGrams float64, at time.Time) (Meal, error) {
	meal := Meal{
		Timestamp: at,
		Name:      name,
		CarbGrams: carbGrams,
	}
	if err := meal.Validate(); err != nil {
		return Meal{}, err
	}
	return meal, nil
}

// Validate checks the meal invariants. The meal name may be empty; only
// numeric fields and the parallel sequences are constrained.
func (m Meal) Validate() error {
	if m.CarbGrams < 0 {
		return validation.New("carbohydrate_content", "must be non-negative")
	}
	if len(m.FoodItems) != len(m.ServingSizes) {
		return validation.Newf("food_items", "%d food items but %d serving sizes", len(m.FoodItems), len(m.ServingSizes))
	}
	if m.BloodSugarBefore != nil && *m.BloodSugarBefore < 0 {
		return validation.New("blood_sugar_before", "must be non-negative")
	}
	if m.BloodSugarAfter != nil && *m.BloodSugarAfter < 0 {
		return validation.New("blood_sugar_after", "must be non-negative")
	}
	if m.DurationMinutes < 0 {
		return validation.New("duration_minutes", "must be non-negative")
	}
	return nil
}

// GlucoseSpike returns the rise from the before to the after
// measurement. Missing measurements or a non-positive rise yield 0.
func (m Meal) GlucoseSpike() float64 {
	if m.BloodSugarBefore == nil || m.BloodSugarAfter == nil {
		return 0
	}
	if spike := *m.BloodSugarAfter - *m.BloodSugarBefore; spike > 0 {
		return spike
	}
	return 0
}

// GeneticProfile carries the genetic context used to adjust risk
// assessments. A zero value means no genetic information is available.
type GeneticProfile struct {
	GeneVariants  map[string]string  `json:"gene_variants"`
	RiskFactors   map[string]float64 `json:"risk_factors"`
	FamilyHistory map[string]bool    `json:"family_history"`
	Ethnicity     string             `json:"ethnicity"`
	Age           int                `json:"age"`
}

// NewGeneticProfile creates a validated genetic profile
func NewGeneticProfile(variants map[string]string, riskFactors map[string]float64, familyHistory map[string]bool, ethnicity string, age int) (GeneticProfile, error) {
	for name, score := range riskFactors {
		if !(score >= 0 && score <= 1) {
			return GeneticProfile{}, validation.Newf("risk_factors", "factor %q must be between 0 and 1, got %v", name, score)
		}
	}
	if age < 0 {
		return GeneticProfile{}, validation.New("age", "must be non-negative")
	}
	return GeneticProfile{
		GeneVariants:  variants,
		RiskFactors:   riskFactors,
		FamilyHistory: familyHistory,
		Ethnicity:     ethnicity,
		Age:           age,
	}, nil
}

// OverallRiskScore averages all risk factor scores, 0 when none are present.
func (g GeneticProfile) OverallRiskScore() float64 {
	if len(g.RiskFactors) == 0 {
		return 0
	}
	sum := 0.0
	for _, score := range g.RiskFactors {
		sum += score
	}
	return sum / float64(len(g.RiskFactors))
}

// RiskFactor returns the score for a single factor, 0 when absent.
func (g GeneticProfile) RiskFactor(name string) float64 {
	return g.RiskFactors[name]
}

// IsEmpty reports whether the profile carries no genetic information.
func (g GeneticProfile) IsEmpty() bool {
	return len(g.GeneVariants) == 0 && len(g.RiskFactors) == 0 && len(g.FamilyHistory) == 0 && g.Ethnicity == "" && g.Age == 0
}
