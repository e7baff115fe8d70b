package risk

// Spike magnitude cutoffs in mg/dL for the recommendation flow. Both
// comparisons are inclusive, so an average spike of exactly 40 is high.
const (
	HighSpikeThreshold     = 40.0
	ModerateSpikeThreshold = 20.0
)

// SpikeMetrics summarizes the positive rises between consecutive
// readings of a series.
type SpikeMetrics struct {
	AverageSpike float64 `json:"average_spike"`
	MaxSpike     float64 `json:"max_spike"`
}

// ComputeSpikes measures consecutive rises in a reading series, taken
// in the order given. Fewer than two readings, or no rises at all,
// yield zero metrics.
func ComputeSpikes(levels []float64) SpikeMetrics {
	if len(levels) < 2 {
		return SpikeMetrics{}
	}

	var rises []float64
	for i := 1; i < len(levels); i++ {
		if diff := levels[i] - levels[i-1]; diff > 0 {
			rises = append(rises, diff)
		}
	}
	if len(rises) == 0 {
		return SpikeMetrics{}
	}

	sum := 0.0
	maxRise := rises[0]
	for _, rise := range rises {
		sum += rise
		if rise > maxRise {
			maxRise = rise
		}
	}
	return SpikeMetrics{
		AverageSpike: sum / float64(len(rises)),
		MaxSpike:     maxRise,
	}
}

// ClassifySpike derives a risk level from the average spike magnitude.
// Independent of Classify's count ratios; a series that is rated low
// here can still be rated high by the count scheme.
func ClassifySpike(averageSpike float64) Level {
	switch {
	case averageSpike >= HighSpikeThreshold:
		return LevelHigh
	case averageSpike >= ModerateSpikeThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}
