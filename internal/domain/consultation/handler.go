package consultation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/consultation/predict", h.Predict)
	api.GET("/consultation/patient/:patientId", h.History)
}

// predictResponse flattens the consultation and flags unpersisted results.
type predictResponse struct {
	*Consultation
	Message string `json:"message,omitempty"`
}

func (h *Handler) Predict(c echo.Context) error {
	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	outcome, err := h.svc.Predict(c.Request().Context(), &req)
	if err != nil {
		return mapError(err)
	}
	resp := predictResponse{Consultation: outcome.Consultation}
	if !outcome.Persisted {
		resp.Message = "store unavailable, result is not persisted"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	items, err := h.svc.History(c.Request().Context(), patientID)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*Consultation{}
	}
	return c.JSON(http.StatusOK, items)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrPatientIDRequired), errors.Is(err, ErrSymptomsRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
