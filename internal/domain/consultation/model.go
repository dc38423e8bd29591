package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Risk tiers, ordered by severity.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Consultation maps to the consultation table. Rows are immutable after
// insert.
type Consultation struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PatientID          uuid.UUID `db:"patient_id" json:"patient_id"`
	Symptoms           []string  `db:"symptoms" json:"symptoms"`
	PredictedDisease   string    `db:"predicted_disease" json:"predicted_disease"`
	RiskFactor         string    `db:"risk_factor" json:"risk_factor"`
	Medicines          []string  `db:"medicines" json:"medicines,omitempty"`
	DoctorConsultation bool      `db:"doctor_consultation" json:"doctor_consultation"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// PredictRequest carries the symptom text plus optional health metrics the
// patient reported during the consultation.
type PredictRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Symptoms  string    `json:"symptoms"`
	Weight    *string   `json:"weight,omitempty"`
	Height    *string   `json:"height,omitempty"`
	Pressure  *string   `json:"pressure,omitempty"`
}

// PredictOutcome is the service-level result of a prediction. Persisted is
// false when the store was unavailable and the classification was returned
// without being recorded.
type PredictOutcome struct {
	Consultation *Consultation
	Persisted    bool
}
