package models

import "time"

// Contract formalizes an approved reservation. Contracts are
// append-only: the backend exposes no update or delete for them.
type Contract struct {
	ID            uint         `json:"id"`
	SignDate      time.Time    `json:"signDate"`
	ReservationID uint         `json:"reservationId"`
	UserID        string       `json:"userId"`
	Total         int          `json:"total"`
	Reservation   *Reservation `json:"reservation,omitempty"`
	User          *User        `json:"user,omitempty"`
}
