package dto

import "time"

// ContractRequest creates a contract for a held reservation. The total
// is not accepted from the caller: it is derived from the referenced
// object's price at creation time.
type ContractRequest struct {
	ReservationID uint      `json:"reservationId" binding:"required"`
	SignDate      time.Time `json:"signDate"`
}

// ContractCreate is the payload actually posted to the backend.
type ContractCreate struct {
	ReservationID uint      `json:"reservationId"`
	UserID        string    `json:"userId"`
	SignDate      time.Time `json:"signDate"`
	Total         int       `json:"total"`
}
