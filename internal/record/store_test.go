package record

import (
	"testing"
	"time"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
)

var testInstant = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testInstant
}

func TestAddMeal_DefaultsTimestampToClock(t *testing.T) {
	store := NewStore(fixedClock)

	meal, err := store.AddMeal("breakfast burrito", 55, time.Time{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !meal.Timestamp.Equal(testInstant) {
		t.Errorf("Expected clock instant %v, got %v", testInstant, meal.Timestamp)
	}
}

func TestAddMeal_KeepsExplicitTimestamp(t *testing.T) {
	store := NewStore(fixedClock)
	at := testInstant.Add(-2 * time.Hour)

	meal, err := store.AddMeal("early snack", 15, at)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !meal.Timestamp.Equal(at) {
		t.Errorf("Expected explicit timestamp %v, got %v", at, meal.Timestamp)
	}
}

func TestAddMeal_RejectsInvalid(t *testing.T) {
	store := NewStore(fixedClock)

	_, err := store.AddMeal("bad meal", -1, time.Time{})
	if err == nil {
		t.Fatal("Expected error for negative carbs")
	}
	if !validation.Is(err) {
		t.Errorf("Expected validation error, got %T", err)
	}
	if len(store.Meals()) != 0 {
		t.Error("Expected rejected meal to not be stored")
	}
}

func TestAddMealRecord_ValidatesBeforeStoring(t *testing.T) {
	store := NewStore(fixedClock)
	meal := Meal{
		Name:         "stir fry",
		CarbGrams:    40,
		FoodItems:    []string{"rice"},
		ServingSizes: []float64{1, 2},
	}

	if _, err := store.AddMealRecord(meal); err == nil {
		t.Fatal("Expected error for mismatched serving sizes")
	}
	if len(store.Meals()) != 0 {
		t.Error("Expected rejected meal to not be stored")
	}
}

func TestRecordReading_NoRangeCheck(t *testing.T) {
	store := NewStore(fixedClock)

	reading := store.RecordReading(-20, time.Time{})

	if reading.Level != -20 {
		t.Errorf("Expected level stored as given, got %v", reading.Level)
	}
	if !reading.Timestamp.Equal(testInstant) {
		t.Errorf("Expected clock instant, got %v", reading.Timestamp)
	}
	if len(store.Readings()) != 1 {
		t.Errorf("Expected 1 reading, got %d", len(store.Readings()))
	}
}

func TestReadings_PreservesInsertionOrder(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(100, testInstant.Add(2*time.Hour))
	store.RecordReading(90, testInstant)
	store.RecordReading(130, testInstant.Add(time.Hour))

	readings := store.Readings()
	levels := []float64{100, 90, 130}
	for i, want := range levels {
		if readings[i].Level != want {
			t.Errorf("Expected level %v at position %d, got %v", want, i, readings[i].Level)
		}
	}
}

func TestReadings_ReturnsCopy(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(100, testInstant)

	readings := store.Readings()
	readings[0].Level = 999

	if store.Readings()[0].Level != 100 {
		t.Error("Expected mutation of the returned slice to not affect the store")
	}
}

func TestSummary_EmptyStore(t *testing.T) {
	store := NewStore(fixedClock)

	if _, ok := store.Summary(); ok {
		t.Error("Expected no summary for an empty store")
	}

	// Readings alone are not enough, meals are required too
	store.RecordReading(100, testInstant)
	if _, ok := store.Summary(); ok {
		t.Error("Expected no summary without meals")
	}
}

func TestSummary_Statistics(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(100, testInstant)
	store.RecordReading(121, testInstant.Add(time.Hour))
	store.RecordReading(110, testInstant.Add(2*time.Hour))
	if _, err := store.AddMeal("lunch", 45, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := store.AddMeal("dinner", 30, testInstant.Add(time.Hour)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, ok := store.Summary()
	if !ok {
		t.Fatal("Expected a summary")
	}

	if summary.AverageBloodSugar != 110.33 {
		t.Errorf("Expected average 110.33, got %v", summary.AverageBloodSugar)
	}
	if summary.HighestBloodSugar != 121 {
		t.Errorf("Expected highest 121, got %v", summary.HighestBloodSugar)
	}
	if summary.LowestBloodSugar != 100 {
		t.Errorf("Expected lowest 100, got %v", summary.LowestBloodSugar)
	}
	if summary.AverageCarbIntake != 37.5 {
		t.Errorf("Expected average carbs 37.5, got %v", summary.AverageCarbIntake)
	}
	if summary.TotalMealsTracked != 2 || summary.TotalReadings != 3 {
		t.Errorf("Expected 2 meals and 3 readings, got %d and %d", summary.TotalMealsTracked, summary.TotalReadings)
	}
	if len(summary.HighCarbMeals) != 0 {
		t.Errorf("Expected no high-carb meals, got %d", len(summary.HighCarbMeals))
	}
}

func TestSummary_HighCarbMeals(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(100, testInstant)
	if _, err := store.AddMeal("pizza night", 82, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := store.AddMeal("salad", 12, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, ok := store.Summary()
	if !ok {
		t.Fatal("Expected a summary")
	}

	if len(summary.HighCarbMeals) != 1 {
		t.Fatalf("Expected 1 high-carb meal, got %d", len(summary.HighCarbMeals))
	}
	if summary.HighCarbMeals[0].Name != "pizza night" {
		t.Errorf("Expected pizza night to be flagged, got %q", summary.HighCarbMeals[0].Name)
	}
}

func TestSummary_RecommendationHealthy(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(105, testInstant)
	if _, err := store.AddMeal("salad", 20, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, _ := store.Summary()
	expected := "Your blood sugar management looks good! Continue with your current healthy habits."
	if summary.Recommendation != expected {
		t.Errorf("Expected healthy habits message, got %q", summary.Recommendation)
	}
}

func TestSummary_RecommendationHighBloodSugar(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(155, testInstant)
	if _, err := store.AddMeal("salad", 20, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, _ := store.Summary()
	expected := "Consider reducing high-carb meals to help manage blood sugar levels."
	if summary.Recommendation != expected {
		t.Errorf("Expected high blood sugar advice, got %q", summary.Recommendation)
	}
}

func TestSummary_RecommendationBothRules(t *testing.T) {
	store := NewStore(fixedClock)
	store.RecordReading(155, testInstant)
	if _, err := store.AddMeal("pasta feast", 90, testInstant); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	summary, _ := store.Summary()
	expected := "Consider reducing high-carb meals to help manage blood sugar levels. " +
		"Try incorporating more fiber-rich foods to slow glucose absorption."
	if summary.Recommendation != expected {
		t.Errorf("Expected both advice sentences, got %q", summary.Recommendation)
	}
}
