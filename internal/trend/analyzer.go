package trend

import (
	"math"
	"sort"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/risk"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
)

// GroupStats holds aggregate statistics for one meal type.
type GroupStats struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Max    float64  `json:"max"`
	Min    float64  `json:"min"`
	StdDev *float64 `json:"std,omitempty"`
}

// RiskCounts is the bucket breakdown and its derived risk level.
type RiskCounts struct {
	HighSpikeCount   int        `json:"high_spike_count"`
	NormalRangeCount int        `json:"normal_range_count"`
	LowSpikeCount    int        `json:"low_spike_count"`
	RiskLevel        risk.Level `json:"risk_level"`
}

// Report is the derived trend analysis over one reading series. It is
// recomputed on every Analyze call and never cached. StdBloodSugar and
// AvgRateOfChange are nil when the series is too short to compute them.
type Report struct {
	TotalReadings    int                   `json:"total_readings"`
	MeanBloodSugar   float64               `json:"mean_blood_sugar"`
	MaxBloodSugar    float64               `json:"max_blood_sugar"`
	MinBloodSugar    float64               `json:"min_blood_sugar"`
	StdBloodSugar    *float64              `json:"std_blood_sugar,omitempty"`
	MedianBloodSugar float64               `json:"median_blood_sugar"`
	AvgRateOfChange  *float64              `json:"avg_rate_of_change,omitempty"`
	MealAnalysis     map[string]GroupStats `json:"meal_analysis,omitempty"`
	RiskAssessment   RiskCounts            `json:"risk_assessment"`
}

// IsEmpty reports whether the report was computed over no readings.
func (r *Report) IsEmpty() bool {
	return r.TotalReadings == 0
}

// Analyzer computes trend reports over blood sugar reading series.
type Analyzer struct{}

// NewAnalyzer creates a new trend analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze validates the series and derives the full trend report.
// mealTypes may be nil; when present it must parallel readings. An
// empty series produces an empty report, not an error. The input is
// never mutated, so repeated calls yield identical reports.
func (a *Analyzer) Analyze(readings []record.Reading, mealTypes []string) (*Report, error) {
	if err := validateSeries(readings, mealTypes); err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return &Report{}, nil
	}

	levels := make([]float64, len(readings))
	for i, r := range readings {
		levels[i] = r.Level
	}

	report := &Report{
		TotalReadings:    len(readings),
		MeanBloodSugar:   mean(levels),
		MaxBloodSugar:    maxOf(levels),
		MinBloodSugar:    minOf(levels),
		StdBloodSugar:    sampleStdDev(levels),
		MedianBloodSugar: median(levels),
		AvgRateOfChange:  averageRateOfChange(readings),
	}
	if mealTypes != nil {
		report.MealAnalysis = groupByMealType(levels, mealTypes)
	}

	high, normal, low := risk.CountBuckets(levels)
	report.RiskAssessment = RiskCounts{
		HighSpikeCount:   high,
		NormalRangeCount: normal,
		LowSpikeCount:    low,
		RiskLevel:        risk.Classify(high, normal, low),
	}
	return report, nil
}

func validateSeries(readings []record.Reading, mealTypes []string) error {
	for i, r := range readings {
		if r.Timestamp.IsZero() {
			return validation.Newf("timestamp", "reading %d has no timestamp", i)
		}
		if math.IsNaN(r.Level) || math.IsInf(r.Level, 0) {
			return validation.Newf("blood_sugar", "reading %d is not a finite number", i)
		}
	}
	if mealTypes != nil && len(mealTypes) != len(readings) {
		return validation.Newf("meal_types", "%d labels for %d readings", len(mealTypes), len(readings))
	}
	return nil
}

// averageRateOfChange orders readings by timestamp and averages the
// per-step level change in mg/dL per hour. The sort is stable, so
// readings at the same instant keep their recorded order and are
// excluded as zero-delta pairs. Returns nil when no usable pair exists.
func averageRateOfChange(readings []record.Reading) *float64 {
	if len(readings) < 2 {
		return nil
	}

	ordered := make([]record.Reading, len(readings))
	copy(ordered, readings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	sum := 0.0
	pairs := 0
	for i := 1; i < len(ordered); i++ {
		hours := ordered[i].Timestamp.Sub(ordered[i-1].Timestamp).Hours()
		if hours == 0 {
			continue
		}
		sum += (ordered[i].Level - ordered[i-1].Level) / hours
		pairs++
	}
	if pairs == 0 {
		return nil
	}

	avg := sum / float64(pairs)
	return &avg
}

func groupByMealType(levels []float64, mealTypes []string) map[string]GroupStats {
	groups := make(map[string][]float64)
	for i, mealType := range mealTypes {
		groups[mealType] = append(groups[mealType], levels[i])
	}

	out := make(map[string]GroupStats, len(groups))
	for mealType, values := range groups {
		out[mealType] = GroupStats{
			Count:  len(values),
			Mean:   mean(values),
			Max:    maxOf(values),
			Min:    minOf(values),
			StdDev: sampleStdDev(values),
		}
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// sampleStdDev is the N-1 standard deviation, nil for fewer than two values.
func sampleStdDev(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		d := v - m
		sumSquares += d * d
	}
	sd := math.Sqrt(sumSquares / float64(len(values)-1))
	return &sd
}

// median works on a sorted copy; an even count averages the middle two.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
