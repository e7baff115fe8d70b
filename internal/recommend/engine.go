package recommend

import (
	"math"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/risk"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
)

// Activity levels accepted by the engine.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
)

// Genetic risk above providerAdviceRisk, after the activity adjustment,
// adds the healthcare provider recommendation. An average carb intake
// above highCarbIntakeGrams adds the fiber advice.
const (
	providerAdviceRisk  = 0.7
	highCarbIntakeGrams = 60.0
)

// activityMultipliers scales genetic risk by lifestyle. More activity
// shrinks the adjusted risk.
var activityMultipliers = map[string]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.0,
	ActivityModerate:  0.8,
	ActivityActive:    0.6,
}

// ActivityMultiplier returns the risk multiplier for an activity level.
// Unrecognized levels fall back to 1.0 rather than failing; input
// validation on the public path is what rejects them.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return 1.0
}

// Input is everything the engine needs for one recommendation pass.
// Readings and MealTypes must be non-nil (an empty slice is fine).
// AvgCarbs and AvgBloodSugar are optional context from the tracker
// summary and stay nil when no summary exists.
type Input struct {
	Readings      []float64
	MealTypes     []string
	GeneticRisk   float64
	ActivityLevel string
	AvgCarbs      *float64
	AvgBloodSugar *float64
}

func (in Input) validate() error {
	if in.Readings == nil {
		return validation.New("blood_sugar_readings", "required")
	}
	if in.MealTypes == nil {
		return validation.New("meal_types", "required")
	}
	if !(in.GeneticRisk >= 0 && in.GeneticRisk <= 1) {
		return validation.Newf("genetic_risk_factor", "must be between 0 and 1, got %v", in.GeneticRisk)
	}
	if _, ok := activityMultipliers[in.ActivityLevel]; !ok {
		return validation.Newf("activity_level", "unknown level %q", in.ActivityLevel)
	}
	if in.AvgCarbs != nil && *in.AvgCarbs < 0 {
		return validation.New("average_carbs", "must be non-negative")
	}
	if in.AvgBloodSugar != nil && *in.AvgBloodSugar < 0 {
		return validation.New("average_blood_sugar", "must be non-negative")
	}
	return nil
}

// Assessment summarizes the spike-based risk evaluation. The numeric
// fields are rounded to two decimals for presentation.
type Assessment struct {
	RiskLevel          risk.Level `json:"risk_level"`
	AverageSpike       float64    `json:"average_spike"`
	MaxSpike           float64    `json:"max_spike"`
	AdjustedRiskFactor float64    `json:"adjusted_risk_factor"`
}

// Recommendation is the engine's full output for one pass.
type Recommendation struct {
	RiskAssessment         Assessment `json:"risk_assessment"`
	DietaryRecommendations []string   `json:"dietary_recommendations"`
	FoodAdvice             FoodAdvice `json:"food_advice"`
}

// Engine derives dietary recommendations from blood sugar patterns,
// genetic risk, and activity level.
type Engine struct{}

// NewEngine creates a new recommendation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend validates the input, evaluates spike risk, and assembles
// the advisory sentences in a fixed order: risk tier first, then
// activity, then genetic risk, then the carb and blood sugar context.
func (e *Engine) Recommend(in Input) (*Recommendation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	spikes := risk.ComputeSpikes(in.Readings)
	level := risk.ClassifySpike(spikes.AverageSpike)

	adjusted := in.GeneticRisk * ActivityMultiplier(in.ActivityLevel)
	if adjusted > 1.0 {
		adjusted = 1.0
	}

	var sentences []string
	switch level {
	case risk.LevelHigh:
		sentences = append(sentences,
			"Consider reducing carbohydrate intake, especially refined carbs",
			"Increase consumption of fiber-rich vegetables and lean proteins")
	case risk.LevelModerate:
		sentences = append(sentences,
			"Monitor your carbohydrate intake and meal timing",
			"Include more omega-3 rich foods like fish and nuts")
	default:
		sentences = append(sentences, "Maintain current healthy eating patterns")
	}
	if in.ActivityLevel == ActivitySedentary || in.ActivityLevel == ActivityLight {
		sentences = append(sentences, "Incorporate light physical activity after meals to help manage blood sugar")
	}
	if adjusted > providerAdviceRisk {
		sentences = append(sentences, "Given your genetic risk factors, consider consulting with a healthcare provider about personalized dietary strategies")
	}
	if in.AvgBloodSugar != nil && *in.AvgBloodSugar > risk.ThresholdHigh {
		sentences = append(sentences, "Consider reducing high-carb meals to help manage blood sugar levels")
	}
	if in.AvgCarbs != nil && *in.AvgCarbs > highCarbIntakeGrams {
		sentences = append(sentences, "Try incorporating more fiber-rich foods to slow glucose absorption")
	}

	return &Recommendation{
		RiskAssessment: Assessment{
			RiskLevel:          level,
			AverageSpike:       round2(spikes.AverageSpike),
			MaxSpike:           round2(spikes.MaxSpike),
			AdjustedRiskFactor: round2(adjusted),
		},
		DietaryRecommendations: sentences,
		FoodAdvice:             DefaultFoodAdvice(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
