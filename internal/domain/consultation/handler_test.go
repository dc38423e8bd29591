package consultation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandlerPredict_RemoteFailureStillReturns200(t *testing.T) {
	e := echo.New()
	// Points at a dead endpoint so the remote call always fails over to
	// the keyword heuristic.
	cl := NewRemoteClassifier("http://127.0.0.1:1", 50*time.Millisecond)
	h := NewHandler(newTestService(newMockRepo(), nil, cl))

	body := fmt.Sprintf(`{"patient_id":%q,"symptoms":"high fever"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/consultation/predict", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Predict(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp predictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.RiskFactor == "" {
		t.Error("expected a non-empty risk tier")
	}
	if resp.PredictedDisease == "" {
		t.Error("expected a non-empty disease label")
	}
}

func TestHandlerPredict_MissingSymptoms(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(newMockRepo(), nil, nil))

	body := fmt.Sprintf(`{"patient_id":%q}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/consultation/predict", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Predict(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandlerHistory_InvalidPatientID(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(newMockRepo(), nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/consultation/patient/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("abc")

	err := h.History(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandlerHistory_EmptyResultIsArray(t *testing.T) {
	e := echo.New()
	h := NewHandler(newTestService(newMockRepo(), nil, nil))

	pid := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/consultation/patient/"+pid.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues(pid.String())

	if err := h.History(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
