package models

import (
	"testing"

	"realty/constants"
)

func TestHeldStateTransitions(t *testing.T) {
	reservation := Reservation{ID: 1, ObjectID: 1, ResStatusID: constants.ResStatusHeld}

	state := GetReservationState(reservation.ResStatusID)
	if err := state.Approve(&reservation); err != nil {
		t.Errorf("Approve from held: unexpected error %v", err)
	}
	if reservation.ResStatusID != constants.ResStatusApproved {
		t.Errorf("ResStatusID = %v, want %v", reservation.ResStatusID, constants.ResStatusApproved)
	}

	reservation.ResStatusID = constants.ResStatusHeld
	state = GetReservationState(reservation.ResStatusID)
	if err := state.Cancel(&reservation); err != nil {
		t.Errorf("Cancel from held: unexpected error %v", err)
	}
	if reservation.ResStatusID != constants.ResStatusCancelled {
		t.Errorf("ResStatusID = %v, want %v", reservation.ResStatusID, constants.ResStatusCancelled)
	}
}

func TestApprovedStateIsTerminal(t *testing.T) {
	reservation := Reservation{ID: 1, ResStatusID: constants.ResStatusApproved}
	state := GetReservationState(reservation.ResStatusID)

	if err := state.Approve(&reservation); err == nil {
		t.Error("Approve from approved: expected error, got nil")
	}
	if err := state.Cancel(&reservation); err == nil {
		t.Error("Cancel from approved: expected error, got nil")
	}
	if reservation.ResStatusID != constants.ResStatusApproved {
		t.Errorf("ResStatusID changed to %v on refused transition", reservation.ResStatusID)
	}
}

func TestCancelledStateIsTerminal(t *testing.T) {
	reservation := Reservation{ID: 1, ResStatusID: constants.ResStatusCancelled}
	state := GetReservationState(reservation.ResStatusID)

	if err := state.Approve(&reservation); err == nil {
		t.Error("Approve from cancelled: expected error, got nil")
	}
	if err := state.Cancel(&reservation); err == nil {
		t.Error("Cancel from cancelled: expected error, got nil")
	}
	if reservation.ResStatusID != constants.ResStatusCancelled {
		t.Errorf("ResStatusID changed to %v on refused transition", reservation.ResStatusID)
	}
}

func TestGetReservationStateUnknownStatus(t *testing.T) {
	state := GetReservationState(99)
	if _, ok := state.(*HeldState); !ok {
		t.Errorf("GetReservationState(99) = %T, want *HeldState", state)
	}
}
