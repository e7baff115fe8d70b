package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/recommend"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/trend"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Format identifies a supported export format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

// Results bundles everything one analysis run produced. Sections that
// were not computed stay nil and are skipped by the writers.
type Results struct {
	RunID          string                    `json:"run_id"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Summary        *record.TrackerSummary    `json:"summary,omitempty"`
	TrendAnalysis  *trend.Report             `json:"trend_analysis,omitempty"`
	Recommendation *recommend.Recommendation `json:"recommendations,omitempty"`
}

// Exporter writes analysis results to flat files.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new results exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes results to path in the requested format. Failures are
// logged and reported as false so an export problem never aborts the
// analysis that produced the results.
func (e *Exporter) Export(results *Results, path string, format Format) bool {
	if err := e.write(results, path, format); err != nil {
		e.logger.Error("export failed",
			zap.String("path", path),
			zap.String("format", string(format)),
			zap.Error(err))
		return false
	}
	e.logger.Info("results exported",
		zap.String("path", path),
		zap.String("format", string(format)))
	return true
}

func (e *Exporter) write(results *Results, path string, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(results, path)
	case FormatJSON:
		return writeJSON(results, path)
	case FormatExcel:
		return writeExcel(results, path)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeJSON(results *Results, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func writeCSV(results *Results, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	if err := csv.NewWriter(file).WriteAll(metricRows(results)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeExcel(results *Results, path string) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, row := range metricRows(results) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("build cell name: %w", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// metricRows flattens the results into metric/value pairs shared by the
// CSV and Excel writers.
func metricRows(results *Results) [][]string {
	rows := [][]string{{"metric", "value"}}
	add := func(metric, value string) {
		rows = append(rows, []string{metric, value})
	}

	add("run_id", results.RunID)
	add("generated_at", results.GeneratedAt.Format(time.RFC3339))

	if s := results.Summary; s != nil {
		add("average_blood_sugar", formatFloat(s.AverageBloodSugar))
		add("highest_blood_sugar", formatFloat(s.HighestBloodSugar))
		add("lowest_blood_sugar", formatFloat(s.LowestBloodSugar))
		add("average_carb_intake", formatFloat(s.AverageCarbIntake))
		add("total_meals_tracked", strconv.Itoa(s.TotalMealsTracked))
		add("total_readings", strconv.Itoa(s.TotalReadings))
		add("high_carb_meals", strconv.Itoa(len(s.HighCarbMeals)))
		add("summary_recommendation", s.Recommendation)
	}

	if t := results.TrendAnalysis; t != nil && !t.IsEmpty() {
		add("mean_blood_sugar", formatFloat(t.MeanBloodSugar))
		add("max_blood_sugar", formatFloat(t.MaxBloodSugar))
		add("min_blood_sugar", formatFloat(t.MinBloodSugar))
		if t.StdBloodSugar != nil {
			add("std_blood_sugar", formatFloat(*t.StdBloodSugar))
		}
		add("median_blood_sugar", formatFloat(t.MedianBloodSugar))
		if t.AvgRateOfChange != nil {
			add("avg_rate_of_change", formatFloat(*t.AvgRateOfChange))
		}
		add("high_spike_count", strconv.Itoa(t.RiskAssessment.HighSpikeCount))
		add("normal_range_count", strconv.Itoa(t.RiskAssessment.NormalRangeCount))
		add("low_spike_count", strconv.Itoa(t.RiskAssessment.LowSpikeCount))
		add("risk_level", string(t.RiskAssessment.RiskLevel))
	}

	if r := results.Recommendation; r != nil {
		add("spike_risk_level", string(r.RiskAssessment.RiskLevel))
		add("average_spike", formatFloat(r.RiskAssessment.AverageSpike))
		add("max_spike", formatFloat(r.RiskAssessment.MaxSpike))
		add("adjusted_risk_factor", formatFloat(r.RiskAssessment.AdjustedRiskFactor))
		add("dietary_recommendations", strings.Join(r.DietaryRecommendations, "; "))
	}

	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
