package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newHandlerTest(repo *mockRepo, booked *mockBooked) (*echo.Echo, *Handler) {
	e := echo.New()
	h := NewHandler(newTestService(repo, booked))
	return e, h
}

func TestHandlerLogin_Success(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(repo, "Dr. Mehta", "9876500001", true)
	e, h := newHandlerTest(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/doctors/login",
		strings.NewReader(`{"phone":"9876500001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Doctor == nil || resp.Doctor.Name != "Dr. Mehta" {
		t.Errorf("unexpected doctor in response: %+v", resp.Doctor)
	}
	if resp.Token == "" {
		t.Error("expected token in response")
	}
}

func TestHandlerLogin_Inactive(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(repo, "Dr. Joshi", "9876500002", false)
	e, h := newHandlerTest(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/doctors/login",
		strings.NewReader(`{"phone":"9876500002"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", httpErr.Code)
	}
}

func TestHandlerLogin_UnknownPhone(t *testing.T) {
	e, h := newHandlerTest(newMockRepo(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/doctors/login",
		strings.NewReader(`{"phone":"0000000000"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandlerAvailable_MissingDate(t *testing.T) {
	e, h := newHandlerTest(newMockRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/available", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Available(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandlerAvailable_ReturnsDoctorsWithSlots(t *testing.T) {
	repo := newMockRepo()
	d := seedDoctor(repo, "Dr. Mehta", "9876500001", true)
	repo.windows[d.ID] = []*AvailabilityWindow{{
		DoctorID: d.ID, AvailableDate: "2026-09-10",
		StartTime: "09:00:00", EndTime: "10:00:00", SlotDuration: 30,
	}}
	e, h := newHandlerTest(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/available?date=2026-09-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Available(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []AvailableDoctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 || len(got[0].Slots) != 2 {
		t.Errorf("expected 1 doctor with 2 slots, got %+v", got)
	}
}

func TestHandlerListActive(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(repo, "Dr. Mehta", "9876500001", true)
	seedDoctor(repo, "Dr. Joshi", "9876500002", false)
	e, h := newHandlerTest(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListActive(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Dr. Mehta" {
		t.Errorf("expected only the active doctor, got %+v", got)
	}
}

func TestHandlerList_Paginated(t *testing.T) {
	repo := newMockRepo()
	seedDoctor(repo, "Dr. Joshi", "9876500002", false)
	seedDoctor(repo, "Dr. Mehta", "9876500001", true)
	seedDoctor(repo, "Dr. Rao", "9876500003", true)
	e, h := newHandlerTest(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?limit=2&offset=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data    []Doctor `json:"data"`
		Total   int      `json:"total"`
		Limit   int      `json:"limit"`
		Offset  int      `json:"offset"`
		HasMore bool     `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Data) != 2 || resp.Total != 3 || !resp.HasMore {
		t.Errorf("unexpected page: %+v", resp)
	}
	if resp.Data[0].Name != "Dr. Joshi" {
		t.Errorf("expected name ordering, got %q first", resp.Data[0].Name)
	}
}

func TestHandlerList_EmptyPage(t *testing.T) {
	e, h := newHandlerTest(newMockRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("expected empty data array, got %s", rec.Body.String())
	}
}
