package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"realty/constants"
	"realty/dto"
	"realty/errors"
	"realty/models"
	"realty/response"
	"realty/services"
	"realty/validator"
)

// ReservationController serves the booking views. Admins see the full
// list with the phone filter; regular users only their own bookings.
type ReservationController struct {
	reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{
		reservations: reservations,
	}
}

func (ctl *ReservationController) GetReservations(c *gin.Context) {
	userRole := c.GetString("userRole")
	phoneFilter := ""

	if userRole == constants.RoleAdmin {
		phoneFilter = c.Query("phoneNumber")
		if phoneFilter != "" {
			if err := validator.ValidatePhone(phoneFilter); err != nil {
				response.ValidationError(c, err.Error())
				return
			}
		}
	}

	if err := ctl.reservations.FetchAll(c.Request.Context(), phoneFilter); err != nil {
		response.ServerError(c)
		return
	}

	list := ctl.reservations.Reservations()
	if userRole != constants.RoleAdmin {
		userID := c.GetString("userID")
		own := make([]models.Reservation, 0, len(list))
		for _, reservation := range list {
			if reservation.UserID == userID {
				own = append(own, reservation)
			}
		}
		list = own
	}

	response.Success(c, list)
}

// CreateReservation books an object for the authenticated user. The
// requesting user is taken from the token, never from the body, and
// the reservation always starts held.
func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid reservation payload")
		return
	}
	req.UserID = c.GetString("userID")

	if err := validator.ValidateReservation(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	created, err := ctl.reservations.Create(c.Request.Context(), c.GetString("token"), req)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, created)
}

// UpdateReservation applies an admin edit; illegal status transitions
// are refused before the backend sees them.
func (ctl *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid reservation payload")
		return
	}
	if err := validator.ValidateReservation(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	updated, err := ctl.reservations.Update(c.Request.Context(), c.GetString("token"), uint(id), req)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeInvalidTransition {
			response.BadRequest(c, appErr.Message)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, updated)
}

// RejectReservation cancels a held booking. The confirmation flag comes
// from the explicit confirm step in the client; an unconfirmed call
// changes nothing.
func (ctl *ReservationController) RejectReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid reject payload")
		return
	}

	isAdmin := c.GetString("userRole") == constants.RoleAdmin
	rejected, err := ctl.reservations.Reject(c.Request.Context(), c.GetString("token"), uint(id), req.Confirmed,
		c.GetString("userID"), isAdmin)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			switch appErr.Code {
			case errors.ErrCodeInvalidTransition:
				response.BadRequest(c, appErr.Message)
				return
			case errors.ErrCodeInvalidOperation:
				response.Forbidden(c)
				return
			}
		}
		response.ServerError(c)
		return
	}

	if !req.Confirmed {
		response.Success(c, gin.H{"cancelled": false})
		return
	}
	response.Success(c, rejected)
}
