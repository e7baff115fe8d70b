package record

import (
	"math"
	"strings"
	"time"
)

// Tracker summary rule thresholds. The tracker applies these to the
// averages over everything recorded, not to individual readings.
const (
	highBloodSugarLevel = 140.0 // mg/dL
	highCarbIntakeGrams = 60.0
	highCarbMealGrams   = 50.0
)

// Store keeps recorded meals and readings in memory in insertion order.
// It is the only stateful component; the analysis packages are pure.
type Store struct {
	clock    Clock
	meals    []Meal
	readings []Reading
}

// NewStore creates an empty record store. A nil clock falls back to time.Now.
func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{clock: clock}
}

// AddMeal validates and appends a basic meal record. A zero timestamp
// records the meal at the clock's current instant.
func (s *Store) AddMeal(name string, carbGrams float64, at time.Time) (Meal, error) {
	if at.IsZero() {
		at = s.clock()
	}
	meal, err := NewMeal(name, carbGrams, at)
	if err != nil {
		return Meal{}, err
	}
	s.meals = append(s.meals, meal)
	return meal, nil
}

// AddMealRecord validates and appends a fully populated meal record
func (s *Store) AddMealRecord(meal Meal) (Meal, error) {
	if meal.Timestamp.IsZero() {
		meal.Timestamp = s.clock()
	}
	if err := meal.Validate(); err != nil {
		return Meal{}, err
	}
	s.meals = append(s.meals, meal)
	return meal, nil
}

// RecordReading appends a blood sugar reading. The level is stored as
// given, out-of-range values are the analyzer's concern.
func (s *Store) RecordReading(level float64, at time.Time) Reading {
	if at.IsZero() {
		at = s.clock()
	}
	reading := Reading{Timestamp: at, Level: level}
	s.readings = append(s.readings, reading)
	return reading
}

// Readings returns a copy of the recorded readings in insertion order.
func (s *Store) Readings() []Reading {
	out := make([]Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Meals returns a copy of the recorded meals in insertion order.
func (s *Store) Meals() []Meal {
	out := make([]Meal, len(s.meals))
	copy(out, s.meals)
	return out
}

// TrackerSummary condenses everything recorded so far.
type TrackerSummary struct {
	AverageBloodSugar float64 `json:"average_blood_sugar"`
	HighestBloodSugar float64 `json:"highest_blood_sugar"`
	LowestBloodSugar  float64 `json:"lowest_blood_sugar"`
	AverageCarbIntake float64 `json:"average_carb_intake"`
	TotalMealsTracked int     `json:"total_meals_tracked"`
	TotalReadings     int     `json:"total_readings"`
	HighCarbMeals     []Meal  `json:"high_carb_meals,omitempty"`
	Recommendation    string  `json:"recommendation"`
}

// Summary condenses the recorded meals and readings. ok is false when
// either sequence is empty and there is nothing to summarize.
func (s *Store) Summary() (TrackerSummary, bool) {
	if len(s.meals) == 0 || len(s.readings) == 0 {
		return TrackerSummary{}, false
	}

	sumLevels := 0.0
	highest := s.readings[0].Level
	lowest := s.readings[0].Level
	for _, r := range s.readings {
		sumLevels += r.Level
		if r.Level > highest {
			highest = r.Level
		}
		if r.Level < lowest {
			lowest = r.Level
		}
	}
	avgBloodSugar := sumLevels / float64(len(s.readings))

	sumCarbs := 0.0
	var highCarbMeals []Meal
	for _, m := range s.meals {
		sumCarbs += m.CarbGrams
		if m.CarbGrams > highCarbMealGrams {
			highCarbMeals = append(highCarbMeals, m)
		}
	}
	avgCarbs := sumCarbs / float64(len(s.meals))

	return TrackerSummary{
		AverageBloodSugar: round2(avgBloodSugar),
		HighestBloodSugar: highest,
		LowestBloodSugar:  lowest,
		AverageCarbIntake: round2(avgCarbs),
		TotalMealsTracked: len(s.meals),
		TotalReadings:     len(s.readings),
		HighCarbMeals:     highCarbMeals,
		Recommendation:    habitAdvice(avgBloodSugar, avgCarbs),
	}, true
}

// habitAdvice assembles the summary habit sentence from the average
// blood sugar and carb intake rules.
func habitAdvice(avgBloodSugar, avgCarbs float64) string {
	var advice []string
	if avgBloodSugar > highBloodSugarLevel {
		advice = append(advice, "Consider reducing high-carb meals to help manage blood sugar levels")
	}
	if avgCarbs > highCarbIntakeGrams {
		advice = append(advice, "Try incorporating more fiber-rich foods to slow glucose absorption")
	}
	if len(advice) == 0 {
		return "Your blood sugar management looks good! Continue with your current healthy habits."
	}
	return strings.Join(advice, ". ") + "."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
