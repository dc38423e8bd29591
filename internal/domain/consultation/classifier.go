package consultation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Prediction is a classifier's verdict on a set of symptoms: the risk
// tier, a patient-facing disease summary, and any recommended medicines.
// Medicines are empty when the classifier has none to suggest, which the
// keyword heuristic never does.
type Prediction struct {
	Risk      string
	Disease   string
	Medicines []string
}

// Classifier assigns a risk prediction to free-text symptoms.
type Classifier interface {
	Classify(ctx context.Context, symptoms string) (*Prediction, error)
}

var (
	highRiskKeywords   = []string{"chest pain", "breathing", "severe", "blood", "unconscious", "heart"}
	mediumRiskKeywords = []string{"fever", "vomiting", "pain", "infection"}
)

// riskLabels maps a tier to the disease summary shown to the patient.
var riskLabels = map[string]string{
	RiskHigh:   "Potential Critical Condition - Immediate Care Required",
	RiskMedium: "Viral/Bacterial Infection - Medical Attention Recommended",
	RiskLow:    "Mild Symptoms - Rest and Hydration recommended",
}

// DiseaseLabel returns the patient-facing summary for a risk tier.
func DiseaseLabel(risk string) string {
	if label, ok := riskLabels[risk]; ok {
		return label
	}
	return riskLabels[RiskLow]
}

// KeywordClassifier scans the symptom text for known risk keywords.
// Matching is case-insensitive containment; keyword order is irrelevant.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(_ context.Context, symptoms string) (*Prediction, error) {
	lower := strings.ToLower(symptoms)
	risk := RiskLow
	for _, word := range highRiskKeywords {
		if strings.Contains(lower, word) {
			risk = RiskHigh
			break
		}
	}
	if risk == RiskLow {
		for _, word := range mediumRiskKeywords {
			if strings.Contains(lower, word) {
				risk = RiskMedium
				break
			}
		}
	}
	return &Prediction{Risk: risk, Disease: DiseaseLabel(risk)}, nil
}

// RemoteClassifier calls an external prediction service with a bounded
// timeout and falls back to the keyword heuristic on any failure. A
// classifier failure is therefore never visible to the caller.
type RemoteClassifier struct {
	url      string
	client   *http.Client
	fallback KeywordClassifier
}

func NewRemoteClassifier(url string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteClassifier) Classify(ctx context.Context, symptoms string) (*Prediction, error) {
	pred, err := r.classifyRemote(ctx, symptoms)
	if err != nil {
		return r.fallback.Classify(ctx, symptoms)
	}
	return pred, nil
}

func (r *RemoteClassifier) classifyRemote(ctx context.Context, symptoms string) (*Prediction, error) {
	payload, err := json.Marshal(map[string]string{"symptoms": symptoms})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	// The prediction service answers {disease, criticality, medicines};
	// medicines is null at high risk, where self-medication is not
	// suggested.
	var body struct {
		Disease     string   `json:"disease"`
		Criticality string   `json:"criticality"`
		Medicines   []string `json:"medicines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	risk := strings.ToUpper(strings.TrimSpace(body.Criticality))
	switch risk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return nil, fmt.Errorf("classifier returned unknown criticality %q", body.Criticality)
	}

	disease := strings.TrimSpace(body.Disease)
	if disease == "" {
		disease = DiseaseLabel(risk)
	}
	return &Prediction{Risk: risk, Disease: disease, Medicines: body.Medicines}, nil
}
