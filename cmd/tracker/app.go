package main

import (
	"context"
	"fmt"
	"time"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/config"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/export"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/importer"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/recommend"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/report"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/service"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/trend"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// runTracker kicks off one analysis run once the app has started and
// shuts the app down when the run completes.
func runTracker(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	svc *service.AnalysisService,
	cfg *config.Config,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			runID := uuid.New().String()
			logger.Info("starting analysis run",
				zap.String("run_id", runID),
				zap.String("readings_file", cfg.Input.ReadingsFile))

			go func() {
				exitCode := 0
				outcome, err := svc.Run(context.Background(), runID)
				if err != nil {
					logger.Error("analysis run failed", zap.String("run_id", runID), zap.Error(err))
					exitCode = 1
				} else {
					printOutcome(outcome)
				}
				if err := shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
					logger.Error("failed to shut down", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("tracker stopped")
			return nil
		},
	})
}

// printOutcome writes the report and the dietary advice to stdout
func printOutcome(outcome *service.Outcome) {
	fmt.Println(outcome.ReportText)
	if outcome.Recommendation == nil {
		return
	}
	fmt.Println()
	fmt.Println("Dietary Recommendations:")
	for _, sentence := range outcome.Recommendation.DietaryRecommendations {
		fmt.Printf("  - %s\n", sentence)
	}
}

// ProvideConfig loads environment configuration and overlays the
// optional user profile file
func ProvideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	profile, err := config.LoadProfile(cfg.Input.ProfileFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyProfile(profile)
	return cfg, nil
}

// ProvideClock supplies the shared time source for record defaults
func ProvideClock() record.Clock {
	return time.Now
}

// ProvideStore creates the in-memory record store
func ProvideStore(clock record.Clock) *record.Store {
	return record.NewStore(clock)
}

// ProvideAnalyzer creates the trend analyzer
func ProvideAnalyzer() *trend.Analyzer {
	return trend.NewAnalyzer()
}

// ProvideEngine creates the recommendation engine
func ProvideEngine() *recommend.Engine {
	return recommend.NewEngine()
}

// ProvideRenderer creates the report renderer
func ProvideRenderer() *report.Renderer {
	return report.NewRenderer()
}

// ProvideImporter creates the input file importer
func ProvideImporter(logger *zap.Logger) *importer.Importer {
	return importer.NewImporter(logger)
}

// ProvideExporter creates the results exporter
func ProvideExporter(logger *zap.Logger) *export.Exporter {
	return export.NewExporter(logger)
}

// ProvideAnalysisService wires the full pipeline
func ProvideAnalysisService(
	store *record.Store,
	analyzer *trend.Analyzer,
	engine *recommend.Engine,
	renderer *report.Renderer,
	im *importer.Importer,
	exporter *export.Exporter,
	cfg *config.Config,
	clock record.Clock,
	logger *zap.Logger,
) *service.AnalysisService {
	return service.NewAnalysisService(store, analyzer, engine, renderer, im, exporter, cfg, clock, logger)
}
