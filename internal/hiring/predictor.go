package hiring

import (
	"context"
	"math"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
)

// Classifier scores a feature record. *Model satisfies it.
type Classifier interface {
	PredictProba(r FeatureRecord) (float64, error)
	Threshold() float64
}

type Prediction struct {
	Hired       bool
	Probability float64
	Message     string
}

// Predictor wraps the loaded classifier. A nil classifier means the model
// failed to load and every prediction reports ModelUnavailable.
type Predictor struct {
	classifier Classifier
	ontology   *matching.Ontology
	logger     *zap.Logger
}

func NewPredictor(classifier Classifier, ontology *matching.Ontology, logger *zap.Logger) *Predictor {
	if ontology == nil {
		ontology = matching.DefaultOntology()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{
		classifier: classifier,
		ontology:   ontology,
		logger:     logger,
	}
}

// Available reports whether a classifier is loaded.
func (p *Predictor) Available() bool {
	return p.classifier != nil
}

// Predict builds the feature record for req and classifies it.
func (p *Predictor) Predict(_ context.Context, req models.HiringPredictionRequest) (*Prediction, error) {
	if p.classifier == nil {
		return nil, &matching.ModelUnavailableError{Model: "hiring prediction model"}
	}

	record := BuildFeatures(req, p.ontology)

	probability, err := p.classifier.PredictProba(record)
	if err != nil {
		return nil, &matching.ComputationError{Step: "hiring prediction", Err: err}
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return nil, &matching.ComputationError{Step: "hiring prediction", Err: errProbabilityRange(probability)}
	}

	hired := probability >= p.classifier.Threshold()
	message := "Candidate is not likely to be hired"
	if hired {
		message = "Candidate is likely to be hired"
	}

	p.logger.Debug("hiring prediction",
		zap.String("applied_job_title", record.AppliedJobTitle),
		zap.Float64("skill_match_ratio", record.SkillMatchRatio),
		zap.Float64("probability", probability),
	)

	return &Prediction{
		Hired:       hired,
		Probability: probability,
		Message:     message,
	}, nil
}

type errProbabilityRange float64

func (e errProbabilityRange) Error() string {
	return "classifier returned probability outside [0,1]"
}
