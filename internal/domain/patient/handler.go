package patient

import (
	"errors"
	"net/http"

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
	api.GET("/patients/search/:phone", h.Search)
	api.POST("/patients", h.Register)
	api.POST("/patients/login", h.Login)
}

func (h *Handler) Search(c echo.Context) error {
	patients, err := h.svc.Search(c.Request().Context(), c.Param("phone"))
	if err != nil {
		return mapError(err)
	}
	if patients == nil {
		patients = []*PatientWithHealth{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Register(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Register(c.Request().Context(), &p); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Login(c echo.Context) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.svc.Login(c.Request().Context(), req.Phone)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPhoneTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrPhoneRequired), errors.Is(err, ErrUsernameRequired),
		errors.Is(err, ErrInvalidAge):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
