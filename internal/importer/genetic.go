package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/record"
	"github.com/GiulianoDami/Post-Meal-Blood-Sugar-Tracker/internal/validation"
	"go.uber.org/zap"
)

// Importer loads tracker input files from disk.
type Importer struct {
	logger *zap.Logger
}

// NewImporter creates a new input file importer
func NewImporter(logger *zap.Logger) *Importer {
	return &Importer{logger: logger}
}

// geneticFile is the on-disk shape of a genetic data file. The
// genetic_risk_factors array is required, the demographic fields are
// optional.
type geneticFile struct {
	GeneticRiskFactors []geneticRiskFactor `json:"genetic_risk_factors"`
	FamilyHistory      map[string]bool     `json:"family_history"`
	Ethnicity          string              `json:"ethnicity"`
	Age                int                 `json:"age"`
}

type geneticRiskFactor struct {
	Gene      string   `json:"gene"`
	Variant   string   `json:"variant"`
	RiskLevel *float64 `json:"risk_level"`
}

// LoadGeneticData reads a genetic profile from a JSON file. Missing
// files and malformed content degrade to an empty profile after
// logging, so callers never have to handle an error here.
func (im *Importer) LoadGeneticData(path string) record.GeneticProfile {
	profile, err := im.readGeneticData(path)
	if err != nil {
		im.logger.Warn("genetic data unavailable, continuing without it",
			zap.String("path", path),
			zap.Error(err))
		return record.GeneticProfile{}
	}
	im.logger.Info("genetic data loaded",
		zap.String("path", path),
		zap.Int("risk_factors", len(profile.RiskFactors)))
	return profile
}

func (im *Importer) readGeneticData(path string) (record.GeneticProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.GeneticProfile{}, fmt.Errorf("read genetic data: %w", err)
	}

	var file geneticFile
	if err := json.Unmarshal(data, &file); err != nil {
		return record.GeneticProfile{}, fmt.Errorf("parse genetic data: %w", err)
	}
	if file.GeneticRiskFactors == nil {
		return record.GeneticProfile{}, validation.New("genetic_risk_factors", "required")
	}

	variants := make(map[string]string, len(file.GeneticRiskFactors))
	factors := make(map[string]float64, len(file.GeneticRiskFactors))
	for i, factor := range file.GeneticRiskFactors {
		if factor.Gene == "" {
			return record.GeneticProfile{}, validation.Newf("genetic_risk_factors", "entry %d is missing the gene name", i)
		}
		if factor.Variant == "" {
			return record.GeneticProfile{}, validation.Newf("genetic_risk_factors", "entry %d is missing the variant", i)
		}
		if factor.RiskLevel == nil {
			return record.GeneticProfile{}, validation.Newf("genetic_risk_factors", "entry %d is missing the risk level", i)
		}
		variants[factor.Gene] = factor.Variant
		factors[factor.Gene] = *factor.RiskLevel
	}

	return record.NewGeneticProfile(variants, factors, file.FamilyHistory, file.Ethnicity, file.Age)
}
