package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

// MsgInvalidID is returned when :id is not a positive integer.
const MsgInvalidID = "Invalid reservation id"

// ReservationHandler serves the customer submit endpoint and the admin
// list and status endpoints.  All methods assume RequireSession (and, for
// admin routes, RequireAdmin) already ran.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

// NewReservationHandler panics if svc is nil.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil reservation service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: svc}
}

// Send handles POST /reservation/send.  Any status in the body is ignored.
func (h *ReservationHandler) Send(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return service.ErrAuth(service.MsgLoginFirst)
	}
	var req service.SubmitInput
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Reservations.Submit(ctx, u, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":     true,
		"message":     "Reservation Sent Successfully!",
		"reservation": res,
	})
}

// All handles GET /reservation/all, newest first.
func (h *ReservationHandler) All(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reservations": list})
}

type updateReq struct {
	Status string `json:"status"`
}

// Update handles PATCH /reservation/update/:id.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return service.ErrValidation(MsgInvalidID)
	}
	var req updateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Reservations.SetStatus(ctx, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Reservation " + string(res.Status) + " successfully!",
		"reservation": res,
	})
}
