package services

import (
	"context"
	"testing"
	"time"

	"realty/constants"
	"realty/dto"
	"realty/errors"
	"realty/models"
)

func newTestContracts(b *stubBackend) (*ContractService, *ReservationService) {
	reservations := newTestReservations(b)
	contracts := NewContractService(ContractServiceOptions{
		Client:       b.client(),
		Reservations: reservations,
	})
	return contracts, reservations
}

func seedHeldReservationWithObject(b *stubBackend, id uint, price int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reservations[id] = models.Reservation{
		ID:          id,
		ObjectID:    1,
		UserID:      "u1",
		ResStatusID: constants.ResStatusHeld,
		Object:      &models.REObject{ID: 1, Street: "Lenina", Price: price},
	}
}

func TestCreateContractDerivesTotalAndApproves(t *testing.T) {
	backend := newStubBackend(t)
	seedHeldReservationWithObject(backend, 1, 1000)
	store, _ := newTestContracts(backend)

	signDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	created, err := store.Create(context.Background(), makeToken("a1", "admin"), "a1",
		dto.ContractRequest{ReservationID: 1, SignDate: signDate})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Total != 1000 {
		t.Errorf("total = %d, want the object price 1000", created.Total)
	}
	if created.ReservationID != 1 {
		t.Errorf("reservationId = %d, want 1", created.ReservationID)
	}
	if created.UserID != "a1" {
		t.Errorf("userId = %q, want the issuing admin a1", created.UserID)
	}
	if !created.SignDate.Equal(signDate) {
		t.Errorf("signDate = %v, want %v", created.SignDate, signDate)
	}

	// Issuing the contract approved the reservation.
	backend.mu.Lock()
	reservation := backend.reservations[1]
	backend.mu.Unlock()
	if reservation.ResStatusID != constants.ResStatusApproved {
		t.Errorf("reservation status = %d after contract, want approved", reservation.ResStatusID)
	}

	// The contract list was refreshed.
	contracts := store.Contracts()
	if len(contracts) != 1 || contracts[0].ID != created.ID {
		t.Errorf("cached contracts = %+v, want the new contract", contracts)
	}
}

func TestCreateContractDefaultsSignDate(t *testing.T) {
	backend := newStubBackend(t)
	seedHeldReservationWithObject(backend, 1, 2500)
	store, _ := newTestContracts(backend)

	before := time.Now().Add(-time.Minute)
	created, err := store.Create(context.Background(), makeToken("a1", "admin"), "a1",
		dto.ContractRequest{ReservationID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.SignDate.Before(before) {
		t.Errorf("unset signDate not defaulted to now: %v", created.SignDate)
	}
}

func TestCreateContractRefusesNonHeld(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestContracts(backend)

	for _, statusID := range []uint{constants.ResStatusApproved, constants.ResStatusCancelled} {
		backend.mu.Lock()
		backend.reservations[1] = models.Reservation{
			ID: 1, ObjectID: 1, UserID: "u1", ResStatusID: statusID,
			Object: &models.REObject{ID: 1, Price: 1000},
		}
		backend.mu.Unlock()

		_, err := store.Create(context.Background(), makeToken("a1", "admin"), "a1",
			dto.ContractRequest{ReservationID: 1})
		if err == nil {
			t.Fatalf("status %d: expected error, got nil", statusID)
		}
		appErr := errors.GetAppError(err)
		if appErr == nil || appErr.Code != errors.ErrCodeNotHeld {
			t.Errorf("status %d: error = %v, want code %s", statusID, err, errors.ErrCodeNotHeld)
		}
	}

	if got := len(store.Contracts()); got != 0 {
		t.Errorf("contracts issued for non-held reservations: %d", got)
	}
}

func TestCreateContractUnknownReservation(t *testing.T) {
	backend := newStubBackend(t)
	store, _ := newTestContracts(backend)

	_, err := store.Create(context.Background(), makeToken("a1", "admin"), "a1",
		dto.ContractRequest{ReservationID: 404})
	if err == nil {
		t.Fatal("expected error for unknown reservation")
	}
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Code != errors.ErrCodeBackendNotFound {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeBackendNotFound)
	}
}

func TestFetchAllReplacesContractList(t *testing.T) {
	backend := newStubBackend(t)
	backend.mu.Lock()
	backend.contracts = []models.Contract{
		{ID: 1, ReservationID: 1, UserID: "a1", Total: 1000},
		{ID: 2, ReservationID: 2, UserID: "a1", Total: 2000},
	}
	backend.mu.Unlock()
	store, _ := newTestContracts(backend)

	if err := store.FetchAll(context.Background(), ""); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if got := len(store.Contracts()); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}
