package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/config"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/export"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/importer"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/recommend"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/report"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/risk"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testClockInstant = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cfg *config.Config) *AnalysisService {
	t.Helper()

	logger := zap.NewNop()
	clock := record.Clock(func() time.Time { return testClockInstant })
	return NewAnalysisService(
		record.NewStore(clock),
		trend.NewAnalyzer(),
		recommend.NewEngine(),
		report.NewRenderer(),
		importer.NewImporter(logger),
		export.NewExporter(logger),
		cfg,
		clock,
		logger,
	)
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	readingsFile := writeInput(t, dir, "readings.csv",
		"timestamp,level,meal_type\n"+
			"2025-06-01 08:00:00,95,breakfast\n"+
			"2025-06-01 12:30:00,150,lunch\n"+
			"2025-06-01 15:00:00,120,snack\n"+
			"2025-06-01 19:00:00,110,dinner\n")
	mealsFile := writeInput(t, dir, "meals.csv",
		"timestamp,meal_name,carbohydrate_content\n"+
			"2025-06-01 08:00:00,oatmeal,40\n"+
			"2025-06-01 12:30:00,sandwich,55\n")
	geneticFile := writeInput(t, dir, "genetic.json", `{
		"genetic_risk_factors": [
			{"gene": "TCF7L2", "variant": "rs7903146", "risk_level": 0.8},
			{"gene": "GCK", "variant": "rs1799884", "risk_level": 0.4}
		]
	}`)
	exportFile := filepath.Join(dir, "results.json")

	cfg := &config.Config{
		ServiceName: "blood-sugar-tracker",
		Input: config.InputConfig{
			ReadingsFile: readingsFile,
			MealsFile:    mealsFile,
			GeneticFile:  geneticFile,
		},
		Export: config.ExportConfig{File: exportFile, Format: "json"},
		Recommendation: config.RecommendationConfig{
			ActivityLevel: "light",
			GeneticRisk:   0.3,
		},
	}

	outcome, err := newTestService(t, cfg).Run(context.Background(), "run-42")
	require.NoError(t, err)

	// The rendered report covers the fixed layout
	assert.True(t, strings.HasPrefix(outcome.ReportText, "POST-MEAL BLOOD SUGAR ANALYSIS REPORT"))
	assert.Contains(t, outcome.ReportText, "  Average Blood Sugar: 118.8 mg/dL")
	assert.Contains(t, outcome.ReportText, "Meal Type Analysis:")

	// One reading above 140 of four is moderate by count ratio
	require.NotNil(t, outcome.TrendReport)
	assert.Equal(t, risk.LevelModerate, outcome.TrendReport.RiskAssessment.RiskLevel)
	assert.Equal(t, 1, outcome.TrendReport.RiskAssessment.HighSpikeCount)

	// The single rise of 55 drives the spike scheme to high
	require.NotNil(t, outcome.Recommendation)
	assert.Equal(t, risk.LevelHigh, outcome.Recommendation.RiskAssessment.RiskLevel)
	assert.Equal(t, 55.0, outcome.Recommendation.RiskAssessment.AverageSpike)
	// Genetic profile averages to 0.6, unchanged by light activity
	assert.Equal(t, 0.6, outcome.Recommendation.RiskAssessment.AdjustedRiskFactor)

	require.NotNil(t, outcome.Summary)
	assert.Equal(t, 118.75, outcome.Summary.AverageBloodSugar)
	require.Len(t, outcome.Summary.HighCarbMeals, 1)
	assert.Equal(t, "sandwich", outcome.Summary.HighCarbMeals[0].Name)

	// Exported results parse back with every section present
	require.True(t, outcome.Exported)
	data, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	var results export.Results
	require.NoError(t, json.Unmarshal(data, &results))
	assert.Equal(t, "run-42", results.RunID)
	assert.Equal(t, testClockInstant, results.GeneratedAt.UTC())
	require.NotNil(t, results.Summary)
	require.NotNil(t, results.TrendAnalysis)
	require.NotNil(t, results.Recommendation)
}

func TestRun_ReadingsOnly(t *testing.T) {
	dir := t.TempDir()
	readingsFile := writeInput(t, dir, "readings.csv",
		"timestamp,level\n"+
			"2025-06-01 08:00:00,100\n"+
			"2025-06-01 12:00:00,105\n")

	cfg := &config.Config{
		Input:          config.InputConfig{ReadingsFile: readingsFile},
		Recommendation: config.RecommendationConfig{ActivityLevel: "moderate", GeneticRisk: 0.3},
	}

	outcome, err := newTestService(t, cfg).Run(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Nil(t, outcome.Summary)
	assert.False(t, outcome.Exported)
	require.NotNil(t, outcome.Recommendation)
	// Configured genetic risk at moderate activity
	assert.Equal(t, 0.24, outcome.Recommendation.RiskAssessment.AdjustedRiskFactor)
	assert.NotContains(t, outcome.ReportText, "Meal Type Analysis:")
}

func TestRun_EmptyReadingsFile(t *testing.T) {
	dir := t.TempDir()
	readingsFile := writeInput(t, dir, "readings.csv", "timestamp,level\n")

	cfg := &config.Config{
		Input:          config.InputConfig{ReadingsFile: readingsFile},
		Recommendation: config.RecommendationConfig{ActivityLevel: "moderate"},
	}

	outcome, err := newTestService(t, cfg).Run(context.Background(), "run-2")
	require.NoError(t, err)

	assert.Equal(t, "No data available for analysis.", outcome.ReportText)
	assert.True(t, outcome.TrendReport.IsEmpty())
	assert.Equal(t, risk.LevelLow, outcome.Recommendation.RiskAssessment.RiskLevel)
}

func TestRun_MissingReadingsFile(t *testing.T) {
	cfg := &config.Config{
		Input:          config.InputConfig{ReadingsFile: filepath.Join(t.TempDir(), "absent.csv")},
		Recommendation: config.RecommendationConfig{ActivityLevel: "moderate"},
	}

	_, err := newTestService(t, cfg).Run(context.Background(), "run-3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load readings")
}

func TestRun_UnreadableGeneticFileDegrades(t *testing.T) {
	dir := t.TempDir()
	readingsFile := writeInput(t, dir, "readings.csv",
		"timestamp,level\n2025-06-01 08:00:00,100\n")
	geneticFile := writeInput(t, dir, "genetic.json", "{broken")

	cfg := &config.Config{
		Input: config.InputConfig{
			ReadingsFile: readingsFile,
			GeneticFile:  geneticFile,
		},
		Recommendation: config.RecommendationConfig{ActivityLevel: "sedentary", GeneticRisk: 0.5},
	}

	outcome, err := newTestService(t, cfg).Run(context.Background(), "run-4")
	require.NoError(t, err)

	// Falls back to the configured risk, scaled by sedentary activity
	assert.Equal(t, 0.6, outcome.Recommendation.RiskAssessment.AdjustedRiskFactor)
}

func TestRun_CanceledContext(t *testing.T) {
	cfg := &config.Config{
		Input:          config.InputConfig{ReadingsFile: "readings.csv"},
		Recommendation: config.RecommendationConfig{ActivityLevel: "moderate"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(t, cfg).Run(ctx, "run-5")

	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_ExportFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	readingsFile := writeInput(t, dir, "readings.csv",
		"timestamp,level\n2025-06-01 08:00:00,100\n")

	cfg := &config.Config{
		Input:          config.InputConfig{ReadingsFile: readingsFile},
		Export:         config.ExportConfig{File: filepath.Join(dir, "no", "such", "dir", "out.json"), Format: "json"},
		Recommendation: config.RecommendationConfig{ActivityLevel: "moderate"},
	}

	outcome, err := newTestService(t, cfg).Run(context.Background(), "run-6")
	require.NoError(t, err)

	assert.False(t, outcome.Exported)
	assert.NotEmpty(t, outcome.ReportText)
}
