package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/libreserve/reservation-service/docs"
	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/model"
	"github.com/libreserve/reservation-service/pkg/validate"
)

type Handler struct {
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		reservationSvc: reservationSvc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.POST("/reservations", h.Reserve)
	api.POST("/reservations/return", h.ReturnBook)
	api.POST("/reservations/list", h.ListReservations)
	api.GET("/reservations/:reservationUid", h.GetReservation)
	api.GET("/books/most-reserved", h.MostReservedBooks)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Reserve godoc
// @Summary  Reserve a book by title
// @Accept   json
// @Produce  json
// @Param    request body model.ReserveRequest true "reserve request"
// @Success  200 {object} model.Reservation
// @Router   /reservations [post]
func (h *Handler) Reserve(c echo.Context) error {
	var req model.ReserveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	rsv, err := h.reservationSvc.Reserve(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// ReturnBook godoc
// @Summary  Return a reserved book
// @Accept   json
// @Produce  json
// @Param    request body model.ReturnRequest true "return request"
// @Success  200 {object} model.Reservation
// @Router   /reservations/return [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	rsv, err := h.reservationSvc.ReturnBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// ListReservations godoc
// @Summary  List reservations of a user
// @Accept   json
// @Produce  json
// @Param    request body model.ListReservationsRequest true "credentials"
// @Success  200 {array} model.Reservation
// @Router   /reservations/list [post]
func (h *Handler) ListReservations(c echo.Context) error {
	var req model.ListReservationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	items, err := h.reservationSvc.ListReservationsForUser(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetReservation godoc
// @Summary  Get a reservation by uid
// @Produce  json
// @Param    reservationUid path string true "reservation uid"
// @Success  200 {object} model.Reservation
// @Router   /reservations/{reservationUid} [get]
func (h *Handler) GetReservation(c echo.Context) error {
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	rsv, err := h.reservationSvc.GetReservation(c.Request().Context(), reservationUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// MostReservedBooks godoc
// @Summary  Books ordered by reservation frequency
// @Produce  json
// @Success  200 {array} model.Book
// @Router   /books/most-reserved [get]
func (h *Handler) MostReservedBooks(c echo.Context) error {
	books, err := h.reservationSvc.MostReservedBooks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// httpError keeps the error taxonomy: missing entities map to 404,
// state/relationship preconditions to 400, credential failures to 403
// without revealing which field mismatched.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrWrongPassword):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrUserMismatch),
		errors.Is(err, errs.ErrBookNotAvailable),
		errors.Is(err, errs.ErrBookNotReserved),
		errors.Is(err, errs.ErrNoReservations),
		errors.Is(err, errs.ErrLoginRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
