package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Phone numbers are unique and double
// as the login credential.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Phone     string    `db:"phone" json:"phone"`
	Age       int       `db:"age" json:"age"`
	Address   *string   `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HealthInfo maps to the patient_health_info table. One row per patient,
// created empty at registration and filled in opportunistically when a
// consultation reports metrics.
type HealthInfo struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Weight    *string   `db:"weight" json:"weight,omitempty"`
	Height    *string   `db:"height" json:"height,omitempty"`
	Pressure  *string   `db:"pressure" json:"pressure,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PatientWithHealth is the search result shape: the patient record with
// its health info nested.
type PatientWithHealth struct {
	Patient
	HealthInfo *HealthInfo `json:"health_info,omitempty"`
}

// LoginResponse is returned by the patient login endpoint.
type LoginResponse struct {
	Patient *Patient `json:"patient"`
	Token   string   `json:"token"`
}
