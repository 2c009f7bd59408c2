package models

import (
	"errors"

	"realty/constants"
)

// ReservationState defines the operations available in each status.
// A held reservation can be approved (contract issued) or cancelled;
// approved and cancelled are terminal.
type ReservationState interface {
	Approve(r *Reservation) error
	Cancel(r *Reservation) error
}

// HeldState is the initial status of every reservation.
type HeldState struct{}

func (s *HeldState) Approve(r *Reservation) error {
	r.ResStatusID = constants.ResStatusApproved
	return nil
}

func (s *HeldState) Cancel(r *Reservation) error {
	r.ResStatusID = constants.ResStatusCancelled
	return nil
}

// ApprovedState is terminal: a contract has been issued.
type ApprovedState struct{}

func (s *ApprovedState) Approve(r *Reservation) error {
	return errors.New("reservation already approved")
}

func (s *ApprovedState) Cancel(r *Reservation) error {
	return errors.New("cannot cancel approved reservation")
}

// CancelledState is terminal.
type CancelledState struct{}

func (s *CancelledState) Approve(r *Reservation) error {
	return errors.New("cannot approve cancelled reservation")
}

func (s *CancelledState) Cancel(r *Reservation) error {
	return errors.New("reservation already cancelled")
}

// GetReservationState returns the state handler for a status id.
func GetReservationState(statusID uint) ReservationState {
	switch statusID {
	case constants.ResStatusHeld:
		return &HeldState{}
	case constants.ResStatusApproved:
		return &ApprovedState{}
	case constants.ResStatusCancelled:
		return &CancelledState{}
	default:
		return &HeldState{}
	}
}
