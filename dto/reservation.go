package dto

import "time"

// ReservationRequest is the body for creating or updating a reservation.
type ReservationRequest struct {
	ObjectID    uint       `json:"objectId" binding:"required"`
	UserID      string     `json:"userId"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	ResStatusID uint       `json:"resStatusId"`
}

// RejectRequest cancels a held reservation. Confirmed must be set by the
// caller after the explicit confirmation step; an unconfirmed reject is
// a no-op.
type RejectRequest struct {
	Confirmed bool `json:"confirmed"`
}
