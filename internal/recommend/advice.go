package recommend

import "github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/risk"

// FoodAdvice is the static food guidance block. It does not vary with
// the input data.
type FoodAdvice struct {
	FoodsToInclude []string `json:"foods_to_include"`
	FoodsToAvoid   []string `json:"foods_to_avoid"`
	GeneralTips    []string `json:"general_tips"`
}

// DefaultFoodAdvice returns the food guidance attached to every
// recommendation.
func DefaultFoodAdvice() FoodAdvice {
	return FoodAdvice{
		FoodsToInclude: []string{"leafy greens", "berries", "nuts", "fish"},
		FoodsToAvoid:   []string{"sugary snacks", "white bread", "processed foods"},
		GeneralTips: []string{
			"Eat smaller, more frequent meals to prevent large spikes",
			"Pair carbohydrates with protein or fiber to slow absorption",
			"Stay hydrated throughout the day",
		},
	}
}

// ForLevel returns the advisory paragraph for a count-ratio risk level.
// The trend report renderer is its consumer; the spike flow builds
// sentence lists through Engine.Recommend instead. Unrecognized levels
// get the insufficient-data paragraph.
func ForLevel(level risk.Level) string {
	switch level {
	case risk.LevelHigh:
		return "Your blood sugar patterns indicate a high risk of spikes. " +
			"Consider consulting with a healthcare provider immediately. " +
			"Focus on reducing refined carbohydrates and increasing fiber intake. " +
			"Monitor blood sugar more frequently."
	case risk.LevelModerate:
		return "Your blood sugar patterns show moderate risk. " +
			"Consider dietary modifications such as smaller portion sizes " +
			"and choosing complex carbohydrates over simple sugars. " +
			"Regular monitoring is recommended."
	case risk.LevelLow:
		return "Your blood sugar patterns appear well-managed. " +
			"Continue maintaining healthy eating habits and regular monitoring. " +
			"Consider tracking your diet to identify patterns that support stable blood sugar."
	default:
		return "Insufficient data to assess risk level. " +
			"Ensure consistent data collection for accurate analysis."
	}
}
