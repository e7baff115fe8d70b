package service

import (
	"context"
	"fmt"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/config"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/export"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/importer"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/logging"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/recommend"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/report"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/trend"
	"go.uber.org/zap"
)

// Outcome carries everything one pipeline pass produced.
type Outcome struct {
	ReportText     string
	TrendReport    *trend.Report
	Recommendation *recommend.Recommendation
	Summary        *record.TrackerSummary
	Exported       bool
}

// AnalysisService runs the full tracking pipeline for one invocation:
// load inputs, populate the record store, analyze trends, derive
// recommendations, render the report, and export the results.
type AnalysisService struct {
	store    *record.Store
	analyzer *trend.Analyzer
	engine   *recommend.Engine
	renderer *report.Renderer
	importer *importer.Importer
	exporter *export.Exporter
	cfg      *config.Config
	clock    record.Clock
	logger   *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	store *record.Store,
	analyzer *trend.Analyzer,
	engine *recommend.Engine,
	renderer *report.Renderer,
	importer *importer.Importer,
	exporter *export.Exporter,
	cfg *config.Config,
	clock record.Clock,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		store:    store,
		analyzer: analyzer,
		engine:   engine,
		renderer: renderer,
		importer: importer,
		exporter: exporter,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

// Run executes one full pipeline pass
func (s *AnalysisService) Run(ctx context.Context, runID string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runLogger := logging.WithRunID(s.logger, runID)

	// Load and record the reading series
	readings, mealTypes, err := s.importer.LoadReadings(s.cfg.Input.ReadingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}
	for _, r := range readings {
		s.store.RecordReading(r.Level, r.Timestamp)
	}

	// Meals are optional context for the tracker summary
	if s.cfg.Input.MealsFile != "" {
		meals, err := s.importer.LoadMeals(s.cfg.Input.MealsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load meals: %w", err)
		}
		for _, meal := range meals {
			if _, err := s.store.AddMealRecord(meal); err != nil {
				return nil, fmt.Errorf("failed to record meal: %w", err)
			}
		}
	}

	// Genetic data degrades to the configured risk when unavailable
	geneticRisk := s.cfg.Recommendation.GeneticRisk
	if s.cfg.Input.GeneticFile != "" {
		profile := s.importer.LoadGeneticData(s.cfg.Input.GeneticFile)
		if !profile.IsEmpty() {
			geneticRisk = profile.OverallRiskScore()
		}
	}

	trendReport, err := s.analyzer.Analyze(s.store.Readings(), mealTypes)
	if err != nil {
		return nil, fmt.Errorf("trend analysis failed: %w", err)
	}

	summary, hasSummary := s.store.Summary()

	recommendation, err := s.recommend(readings, mealTypes, geneticRisk, summary, hasSummary)
	if err != nil {
		return nil, fmt.Errorf("recommendation failed: %w", err)
	}

	outcome := &Outcome{
		ReportText:     s.renderer.Render(trendReport),
		TrendReport:    trendReport,
		Recommendation: recommendation,
	}
	if hasSummary {
		outcome.Summary = &summary
	}

	if s.cfg.Export.File != "" {
		outcome.Exported = s.exportResults(runID, outcome)
	}

	runLogger.Info("analysis complete",
		zap.Int("readings", len(readings)),
		zap.String("risk_level", string(trendReport.RiskAssessment.RiskLevel)),
		zap.String("spike_risk_level", string(recommendation.RiskAssessment.RiskLevel)),
	)
	return outcome, nil
}

func (s *AnalysisService) recommend(
	readings []record.Reading,
	mealTypes []string,
	geneticRisk float64,
	summary record.TrackerSummary,
	hasSummary bool,
) (*recommend.Recommendation, error) {
	levels := make([]float64, len(readings))
	for i, r := range readings {
		levels[i] = r.Level
	}
	// The engine requires labels to be present, not necessarily useful
	if mealTypes == nil {
		mealTypes = []string{}
	}

	in := recommend.Input{
		Readings:      levels,
		MealTypes:     mealTypes,
		GeneticRisk:   geneticRisk,
		ActivityLevel: s.cfg.Recommendation.ActivityLevel,
	}
	if hasSummary {
		in.AvgCarbs = &summary.AverageCarbIntake
		in.AvgBloodSugar = &summary.AverageBloodSugar
	}
	return s.engine.Recommend(in)
}

func (s *AnalysisService) exportResults(runID string, outcome *Outcome) bool {
	results := &export.Results{
		RunID:          runID,
		GeneratedAt:    s.clock(),
		Summary:        outcome.Summary,
		Recommendation: outcome.Recommendation,
	}
	if !outcome.TrendReport.IsEmpty() {
		results.TrendAnalysis = outcome.TrendReport
	}
	return s.exporter.Export(results, s.cfg.Export.File, export.Format(s.cfg.Export.Format))
}
