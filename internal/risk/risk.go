package risk

import "strings"

// Glucose bucket boundaries in mg/dL. A reading above ThresholdHigh is
// a high spike, below ThresholdLow a low spike, anything else is in the
// normal range.
const (
	ThresholdHigh = 140.0
	ThresholdLow  = 70.0
)

// Ratio cutoffs for the count-based classification. Both comparisons
// are strict, so a ratio of exactly 0.30 stays moderate.
const (
	HighRiskRatio     = 0.30
	ModerateRiskRatio = 0.15
)

// Level is the qualitative risk classification.
type Level string

const (
	LevelHigh     Level = "high"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
	LevelUnknown  Level = "unknown"
)

// Title returns the level capitalized for report display.
func (l Level) Title() string {
	s := string(l)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CountBuckets partitions readings into the three glucose buckets.
// Every reading lands in exactly one bucket.
func CountBuckets(levels []float64) (high, normal, low int) {
	for _, level := range levels {
		switch {
		case level > ThresholdHigh:
			high++
		case level < ThresholdLow:
			low++
		default:
			normal++
		}
	}
	return high, normal, low
}

// Classify derives a risk level from bucket counts. This is the
// count-ratio scheme used by the trend report; the spike-magnitude
// scheme used by the recommendation flow is ClassifySpike.
func Classify(high, normal, low int) Level {
	total := high + normal + low
	if total == 0 {
		return LevelUnknown
	}
	ratio := float64(high) / float64(total)
	switch {
	case ratio > HighRiskRatio:
		return LevelHigh
	case ratio > ModerateRiskRatio:
		return LevelModerate
	default:
		return LevelLow
	}
}
