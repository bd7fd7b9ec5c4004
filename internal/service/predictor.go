package service

import (
	"errors"
	"fmt"
	"math"

	"houseprice/internal/model"
	"houseprice/internal/repository"
)

// ErrNonFinitePrediction is returned when the model output overflows or is NaN
var ErrNonFinitePrediction = errors.New("prediction is not a finite number")

// LinearModel is a fitted linear regression. It is immutable once built and
// safe for concurrent use.
type LinearModel struct {
	coefficients []float64
	intercept    float64
	info         model.ModelInfo
}

// NewLinearModel checks an artifact against the encoding schema and builds
// the model. Any mismatch is a *repository.ModelLoadError so that callers
// treat it like an unreadable file.
func NewLinearModel(artifact *model.ModelArtifact, source string) (*LinearModel, error) {
	if artifact == nil {
		return nil, &repository.ModelLoadError{Path: source, Err: errors.New("artifact is nil")}
	}
	if err := checkArtifact(artifact); err != nil {
		return nil, &repository.ModelLoadError{Path: source, Err: err}
	}

	coefficients := make([]float64, len(artifact.Coefficients))
	copy(coefficients, artifact.Coefficients)

	modelType := artifact.ModelType
	if modelType == "" {
		modelType = "Linear Regression"
	}
	problemType := artifact.ProblemType
	if problemType == "" {
		problemType = "regression"
	}

	return &LinearModel{
		coefficients: coefficients,
		intercept:    artifact.Intercept,
		info: model.ModelInfo{
			ModelType:     modelType,
			ProblemType:   problemType,
			SchemaVersion: SchemaVersion,
			Features:      FeatureOrder(),
			FeatureCount:  FeatureCount,
			R2Score:       artifact.R2Score,
			TrainedAt:     artifact.TrainedAt,
		},
	}, nil
}

func checkArtifact(a *model.ModelArtifact) error {
	if a.SchemaVersion != "" && a.SchemaVersion != SchemaVersion {
		return fmt.Errorf("schema version %q does not match %q", a.SchemaVersion, SchemaVersion)
	}
	if a.ProblemType != "" && a.ProblemType != "regression" {
		return fmt.Errorf("problem type %q is not regression", a.ProblemType)
	}
	if len(a.Coefficients) != FeatureCount {
		return fmt.Errorf("model expects %d features, encoder produces %d", len(a.Coefficients), FeatureCount)
	}
	if len(a.Features) > 0 {
		if len(a.Features) != FeatureCount {
			return fmt.Errorf("artifact lists %d feature names, encoder produces %d", len(a.Features), FeatureCount)
		}
		for i, name := range a.Features {
			if name != featureOrder[i] {
				return fmt.Errorf("feature %d is %q, encoder has %q", i, name, featureOrder[i])
			}
		}
	}
	for i, c := range a.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("coefficient %d (%s) is not finite", i, featureOrder[i])
		}
	}
	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return errors.New("intercept is not finite")
	}
	return nil
}

// Predict evaluates intercept + coefficients·vec
func (m *LinearModel) Predict(vec EncodedVector) (float64, error) {
	if len(vec) != len(m.coefficients) {
		return 0, fmt.Errorf("vector has %d features, model expects %d", len(vec), len(m.coefficients))
	}
	y := m.intercept
	for i, x := range vec {
		y += m.coefficients[i] * x
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, ErrNonFinitePrediction
	}
	return y, nil
}

// Info returns the model metadata
func (m *LinearModel) Info() model.ModelInfo {
	info := m.info
	info.Features = FeatureOrder()
	return info
}

// Regressor is the inference surface PredictionService needs
type Regressor interface {
	Predict(vec EncodedVector) (float64, error)
	Info() model.ModelInfo
}

// PredictionService owns the loaded model and serves predictions from it
type PredictionService struct {
	model Regressor
}

// NewPredictionService creates a new prediction service
func NewPredictionService(m Regressor) *PredictionService {
	return &PredictionService{model: m}
}

// Predict runs the model on one encoded vector
func (s *PredictionService) Predict(vec EncodedVector) (float64, error) {
	return s.model.Predict(vec)
}

// PredictBatch applies Predict to every vector independently. Both returned
// slices have len(vecs) entries; errs[i] is nil when out[i] is valid.
func (s *PredictionService) PredictBatch(vecs []EncodedVector) ([]float64, []error) {
	out := make([]float64, len(vecs))
	errs := make([]error, len(vecs))
	for i, vec := range vecs {
		out[i], errs[i] = s.model.Predict(vec)
	}
	return out, errs
}

// PredictFeatures encodes a record and predicts its price
func (s *PredictionService) PredictFeatures(h *model.HouseFeatures) (float64, EncodedVector, error) {
	vec, err := Encode(h)
	if err != nil {
		return 0, nil, err
	}
	y, err := s.model.Predict(vec)
	if err != nil {
		return 0, vec, err
	}
	return y, vec, nil
}

// PredictFeaturesBatch encodes and predicts every record independently.
// All returned slices have len(hs) entries; errs[i] is nil when prices[i]
// is valid, and a failure at one index never affects another.
func (s *PredictionService) PredictFeaturesBatch(hs []*model.HouseFeatures) ([]float64, []EncodedVector, []error) {
	prices := make([]float64, len(hs))
	vecs := make([]EncodedVector, len(hs))
	errs := make([]error, len(hs))
	for i, h := range hs {
		prices[i], vecs[i], errs[i] = s.PredictFeatures(h)
	}
	return prices, vecs, errs
}

// Info returns metadata about the served model
func (s *PredictionService) Info() model.ModelInfo {
	return s.model.Info()
}
