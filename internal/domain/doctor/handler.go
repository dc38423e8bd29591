package doctor

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
	"github.com/gaavsvaasthy/gaavsvaasthy/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.POST("/doctors", h.Register)
	api.POST("/doctors/login", h.Login)
	api.GET("/doctors/available", h.Available)
	api.POST("/doctors/availability", h.AddAvailability)
	// Doctor list for the booking page dropdown.
	api.GET("/appointments/doctors", h.ListActive)
}

func (h *Handler) Register(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Register(c.Request().Context(), &d); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, d)
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

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) ListActive(c echo.Context) error {
	doctors, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Available(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}
	doctors, err := h.svc.AvailableOn(c.Request().Context(), date)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) AddAvailability(c echo.Context) error {
	var w AvailabilityWindow
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddAvailability(c.Request().Context(), &w); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, w)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInactive):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrPhoneRequired), errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidWindow),
		errors.Is(err, ErrDoctorIDRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
