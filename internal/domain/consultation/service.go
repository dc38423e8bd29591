package consultation

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
)

var (
	ErrPatientIDRequired = errors.New("patient_id is required")
	ErrSymptomsRequired  = errors.New("symptoms are required")
)

type Service struct {
	repo       Repository
	health     HealthUpdater
	classifier Classifier
	logger     zerolog.Logger
}

func NewService(repo Repository, health HealthUpdater, classifier Classifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, health: health, classifier: classifier, logger: logger}
}

// splitSymptoms turns the free-text symptom string into trimmed entries.
func splitSymptoms(symptoms string) []string {
	var out []string
	for _, s := range strings.Split(symptoms, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Predict classifies the symptoms, records the consultation and updates the
// patient's health metrics when any were reported. The classification always
// succeeds; when the store is unavailable the outcome is returned unpersisted.
// A failed metrics update is logged, never returned.
func (s *Service) Predict(ctx context.Context, req *PredictRequest) (*PredictOutcome, error) {
	if req.PatientID == uuid.Nil {
		return nil, ErrPatientIDRequired
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		return nil, ErrSymptomsRequired
	}

	pred, err := s.classifier.Classify(ctx, req.Symptoms)
	if err != nil {
		// The remote classifier already falls back internally; this
		// path only fires for a broken custom Classifier. Degrade to
		// the keyword heuristic rather than failing the request.
		s.logger.Warn().Err(err).Msg("classifier failed, using keyword heuristic")
		pred, _ = KeywordClassifier{}.Classify(ctx, req.Symptoms)
	}
	disease := pred.Disease
	if disease == "" {
		disease = DiseaseLabel(pred.Risk)
	}

	cons := &Consultation{
		PatientID:          req.PatientID,
		Symptoms:           splitSymptoms(req.Symptoms),
		PredictedDisease:   disease,
		RiskFactor:         pred.Risk,
		Medicines:          pred.Medicines,
		DoctorConsultation: pred.Risk == RiskHigh,
	}

	if err := s.repo.Create(ctx, cons); err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			s.logger.Warn().Msg("store unavailable, returning unpersisted prediction")
			return &PredictOutcome{Consultation: cons, Persisted: false}, nil
		}
		return nil, err
	}

	if req.Weight != nil || req.Height != nil || req.Pressure != nil {
		if err := s.health.UpdateHealthMetrics(ctx, req.PatientID, req.Weight, req.Height, req.Pressure); err != nil {
			s.logger.Error().Err(err).
				Str("patient_id", req.PatientID.String()).
				Msg("failed to update health metrics")
		}
	}

	return &PredictOutcome{Consultation: cons, Persisted: true}, nil
}

// History returns the patient's consultations, newest first.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	if patientID == uuid.Nil {
		return nil, ErrPatientIDRequired
	}
	return s.repo.ListByPatient(ctx, patientID)
}
