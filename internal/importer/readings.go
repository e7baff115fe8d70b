package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/tools/timeparser"
	"go.uber.org/zap"
)

// LoadReadings reads a blood sugar series from a CSV or JSON file and
// returns the readings with their optional meal type labels. The label
// slice is nil when the file carries no labels at all.
func (im *Importer) LoadReadings(path string) ([]record.Reading, []string, error) {
	var (
		readings  []record.Reading
		mealTypes []string
		err       error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		readings, mealTypes, err = im.readingsFromCSV(path)
	case ".json":
		readings, mealTypes, err = im.readingsFromJSON(path)
	default:
		return nil, nil, fmt.Errorf("unsupported readings format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, nil, err
	}
	im.logger.Info("readings loaded",
		zap.String("path", path),
		zap.Int("count", len(readings)),
		zap.Bool("labeled", mealTypes != nil))
	return readings, mealTypes, nil
}

func (im *Importer) readingsFromCSV(path string) ([]record.Reading, []string, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}

	tsCol, ok := header["timestamp"]
	if !ok {
		return nil, nil, validation.New("timestamp", "column is required")
	}
	levelCol, ok := header["level"]
	if !ok {
		// The analysis export format calls the column blood_sugar
		if levelCol, ok = header["blood_sugar"]; !ok {
			return nil, nil, validation.New("level", "column is required")
		}
	}
	mealCol, hasMeals := header["meal_type"]

	readings := make([]record.Reading, 0, len(rows))
	var mealTypes []string
	if hasMeals {
		mealTypes = make([]string, 0, len(rows))
	}
	for i, row := range rows {
		reading, err := parseReadingRow(i, row[tsCol], row[levelCol])
		if err != nil {
			return nil, nil, err
		}
		readings = append(readings, reading)
		if hasMeals {
			mealTypes = append(mealTypes, row[mealCol])
		}
	}
	return readings, mealTypes, nil
}

type readingRow struct {
	Timestamp string   `json:"timestamp"`
	Level     *float64 `json:"level"`
	MealType  *string  `json:"meal_type"`
}

func (im *Importer) readingsFromJSON(path string) ([]record.Reading, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read readings: %w", err)
	}

	var rows []readingRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("parse readings: %w", err)
	}

	readings := make([]record.Reading, 0, len(rows))
	labeled := false
	mealTypes := make([]string, 0, len(rows))
	for i, row := range rows {
		if row.Level == nil {
			return nil, nil, validation.Newf("level", "reading %d has no blood sugar value", i)
		}
		ts, err := timeparser.ParseReadingTimestamp(row.Timestamp)
		if err != nil {
			return nil, nil, validation.Newf("timestamp", "reading %d: %v", i, err)
		}
		readings = append(readings, record.Reading{Timestamp: ts, Level: *row.Level})
		if row.MealType != nil {
			labeled = true
			mealTypes = append(mealTypes, *row.MealType)
		} else {
			mealTypes = append(mealTypes, "")
		}
	}
	if !labeled {
		mealTypes = nil
	}
	return readings, mealTypes, nil
}

func parseReadingRow(index int, tsField, levelField string) (record.Reading, error) {
	ts, err := timeparser.ParseReadingTimestamp(tsField)
	if err != nil {
		return record.Reading{}, validation.Newf("timestamp", "row %d: %v", index, err)
	}
	level, err := strconv.ParseFloat(strings.TrimSpace(levelField), 64)
	if err != nil {
		return record.Reading{}, validation.Newf("level", "row %d: not a number: %q", index, levelField)
	}
	return record.Reading{Timestamp: ts, Level: level}, nil
}

// LoadMeals reads meal records from a CSV or JSON file. Every meal is
// validated before any are returned.
func (im *Importer) LoadMeals(path string) ([]record.Meal, error) {
	var (
		meals []record.Meal
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		meals, err = im.mealsFromCSV(path)
	case ".json":
		meals, err = im.mealsFromJSON(path)
	default:
		return nil, fmt.Errorf("unsupported meals format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	im.logger.Info("meals loaded", zap.String("path", path), zap.Int("count", len(meals)))
	return meals, nil
}

func (im *Importer) mealsFromCSV(path string) ([]record.Meal, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	tsCol, ok := header["timestamp"]
	if !ok {
		return nil, validation.New("timestamp", "column is required")
	}
	nameCol, ok := header["meal_name"]
	if !ok {
		return nil, validation.New("meal_name", "column is required")
	}
	carbCol, ok := header["carbohydrate_content"]
	if !ok {
		return nil, validation.New("carbohydrate_content", "column is required")
	}

	meals := make([]record.Meal, 0, len(rows))
	for i, row := range rows {
		ts, err := timeparser.ParseReadingTimestamp(row[tsCol])
		if err != nil {
			return nil, validation.Newf("timestamp", "row %d: %v", i, err)
		}
		carbs, err := strconv.ParseFloat(strings.TrimSpace(row[carbCol]), 64)
		if err != nil {
			return nil, validation.Newf("carbohydrate_content", "row %d: not a number: %q", i, row[carbCol])
		}
		meal, err := record.NewMeal(row[nameCol], carbs, ts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		meals = append(meals, meal)
	}
	return meals, nil
}

type mealRow struct {
	Timestamp        string             `json:"timestamp"`
	Name             string             `json:"meal_name"`
	CarbGrams        *float64           `json:"carbohydrate_content"`
	FoodItems        []string           `json:"food_items"`
	ServingSizes     []float64          `json:"serving_sizes"`
	NutritionalInfo  map[string]float64 `json:"nutritional_info"`
	BloodSugarBefore *float64           `json:"blood_sugar_before"`
	BloodSugarAfter  *float64           `json:"blood_sugar_after"`
	DurationMinutes  int                `json:"duration_minutes"`
}

func (im *Importer) mealsFromJSON(path string) ([]record.Meal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meals: %w", err)
	}

	var rows []mealRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse meals: %w", err)
	}

	meals := make([]record.Meal, 0, len(rows))
	for i, row := range rows {
		if row.CarbGrams == nil {
			return nil, validation.Newf("carbohydrate_content", "meal %d has no carbohydrate content", i)
		}
		ts, err := timeparser.ParseReadingTimestamp(row.Timestamp)
		if err != nil {
			return nil, validation.Newf("timestamp", "meal %d: %v", i, err)
		}
		meal := record.Meal{
			Timestamp:        ts,
			Name:             row.Name,
			CarbGrams:        *row.CarbGrams,
			FoodItems:        row.FoodItems,
			ServingSizes:     row.ServingSizes,
			NutritionalInfo:  row.NutritionalInfo,
			BloodSugarBefore: row.BloodSugarBefore,
			BloodSugarAfter:  row.BloodSugarAfter,
			DurationMinutes:  row.DurationMinutes,
		}
		if err := meal.Validate(); err != nil {
			return nil, fmt.Errorf("meal %d: %w", i, err)
		}
		meals = append(meals, meal)
	}
	return meals, nil
}

// readCSV loads all rows and maps the lowercased header names to their
// column index. Short rows are rejected by the csv reader itself.
func readCSV(path string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, validation.New("header", "csv file is empty")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return rows[1:], header, nil
}
