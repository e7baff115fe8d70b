package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/recommend"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/trend"
)

// noDataMessage is rendered when the trend report covers no readings.
const noDataMessage = "No data available for analysis."

// Renderer produces the plain-text analysis report. The line order is
// fixed so downstream text diffs stay meaningful; meal type sections
// are sorted by name for the same reason.
type Renderer struct{}

// NewRenderer creates a new report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render formats a trend report as the fixed-layout text document.
func (r *Renderer) Render(rep *trend.Report) string {
	if rep == nil || rep.IsEmpty() {
		return noDataMessage
	}

	lines := []string{
		"POST-MEAL BLOOD SUGAR ANALYSIS REPORT",
		strings.Repeat("=", 40),
		"",
		"Overall Statistics:",
		fmt.Sprintf("  Average Blood Sugar: %.1f mg/dL", rep.MeanBloodSugar),
		fmt.Sprintf("  Maximum Blood Sugar: %.1f mg/dL", rep.MaxBloodSugar),
		fmt.Sprintf("  Minimum Blood Sugar: %.1f mg/dL", rep.MinBloodSugar),
		fmt.Sprintf("  Standard Deviation: %.1f mg/dL", orZero(rep.StdBloodSugar)),
		"",
		"Risk Assessment:",
		fmt.Sprintf("  Risk Level: %s", rep.RiskAssessment.RiskLevel.Title()),
		fmt.Sprintf("  High Spikes: %d", rep.RiskAssessment.HighSpikeCount),
		fmt.Sprintf("  Normal Range: %d", rep.RiskAssessment.NormalRangeCount),
		fmt.Sprintf("  Low Spikes: %d", rep.RiskAssessment.LowSpikeCount),
		"",
	}

	if len(rep.MealAnalysis) > 0 {
		lines = append(lines, "Meal Type Analysis:")
		for _, mealType := range sortedMealTypes(rep.MealAnalysis) {
			group := rep.MealAnalysis[mealType]
			lines = append(lines,
				fmt.Sprintf("  %s:", mealType),
				fmt.Sprintf("    Mean: %.1f mg/dL", group.Mean),
				fmt.Sprintf("    Max: %.1f mg/dL", group.Max),
				fmt.Sprintf("    Min: %.1f mg/dL", group.Min),
				fmt.Sprintf("    Std Dev: %.1f mg/dL", orZero(group.StdDev)),
			)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Recommendations:", recommend.ForLevel(rep.RiskAssessment.RiskLevel))
	return strings.Join(lines, "\n")
}

func sortedMealTypes(groups map[string]trend.GroupStats) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// orZero renders an absent deviation as 0.0
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
