package services

import (
	"context"
	"sync"

	"realty/constants"
	"realty/dto"
	"realty/errors"
	"realty/models"
	"realty/services/logger"
)

// ReservationService is the reservation store: an in-memory list kept
// in sync by refetching the full list after every mutation. Status
// transitions are validated against the state machine before the
// backend is asked to perform them.
type ReservationService struct {
	client *BackendClient
	log    logger.Logger

	mu           sync.Mutex
	reservations []models.Reservation
}

type ReservationServiceOptions struct {
	Client *BackendClient
	Logger logger.Logger
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &ReservationService{
		client: opts.Client,
		log:    opts.Logger,
	}
}

// Reservations returns a snapshot of the cached list.
func (s *ReservationService) Reservations() []models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.Reservation, len(s.reservations))
	copy(snapshot, s.reservations)
	return snapshot
}

// FetchAll replaces the list, optionally narrowed server-side by phone.
func (s *ReservationService) FetchAll(ctx context.Context, phoneFilter string) error {
	list, err := s.client.GetReservations(ctx, phoneFilter)
	if err != nil {
		s.log.Error("fetch reservations: %v", err)
		return err
	}

	s.mu.Lock()
	s.reservations = list
	s.mu.Unlock()
	return nil
}

// Create posts a new held reservation and refetches the full list.
// Whatever status the caller sent is overridden: every reservation
// starts held.
func (s *ReservationService) Create(ctx context.Context, token string, req dto.ReservationRequest) (models.Reservation, error) {
	req.ResStatusID = constants.ResStatusHeld

	created, err := s.client.CreateReservation(ctx, token, req)
	if err != nil {
		return models.Reservation{}, err
	}
	if err := s.FetchAll(ctx, ""); err != nil {
		s.log.Error("refresh after reservation create: %v", err)
	}
	return created, nil
}

// Update changes a reservation, validating any status transition
// against the state machine first, then refetches the full list.
func (s *ReservationService) Update(ctx context.Context, token string, id uint, req dto.ReservationRequest) (models.Reservation, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	// An omitted status zero-binds; carry the current one so the PUT
	// can never sidestep the state machine.
	if req.ResStatusID == 0 {
		req.ResStatusID = current.ResStatusID
	}
	if req.ResStatusID != current.ResStatusID {
		if err := checkTransition(current, req.ResStatusID); err != nil {
			return models.Reservation{}, errors.NewAppError(errors.ErrCodeInvalidTransition, err.Error(), err)
		}
	}

	updated, err := s.client.UpdateReservation(ctx, token, id, req)
	if err != nil {
		return models.Reservation{}, err
	}
	if err := s.FetchAll(ctx, ""); err != nil {
		s.log.Error("refresh after reservation update: %v", err)
	}
	return updated, nil
}

// Reject cancels a held reservation. The explicit confirmation step
// precedes every rejection: an unconfirmed call issues no update.
// Regular users may only reject their own reservations; admins any.
func (s *ReservationService) Reject(ctx context.Context, token string, id uint, confirmed bool, requesterID string, admin bool) (models.Reservation, error) {
	if !confirmed {
		return models.Reservation{}, nil
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}
	if !admin && current.UserID != requesterID {
		return models.Reservation{}, errors.NewAppError(errors.ErrCodeInvalidOperation,
			"reservation belongs to another user", nil)
	}

	req := dto.ReservationRequest{
		ObjectID:    current.ObjectID,
		UserID:      current.UserID,
		StartDate:   current.StartDate,
		EndDate:     current.EndDate,
		ResStatusID: constants.ResStatusCancelled,
	}
	return s.Update(ctx, token, id, req)
}

// Approve advances a held reservation after a contract has been issued
// for it. Called by the contract store, never directly from a view.
func (s *ReservationService) Approve(ctx context.Context, token string, id uint) (models.Reservation, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	req := dto.ReservationRequest{
		ObjectID:    current.ObjectID,
		UserID:      current.UserID,
		StartDate:   current.StartDate,
		EndDate:     current.EndDate,
		ResStatusID: constants.ResStatusApproved,
	}
	return s.Update(ctx, token, id, req)
}

// find looks a reservation up in the cache, falling back to the backend.
func (s *ReservationService) find(ctx context.Context, id uint) (models.Reservation, error) {
	s.mu.Lock()
	for _, reservation := range s.reservations {
		if reservation.ID == id {
			s.mu.Unlock()
			return reservation, nil
		}
	}
	s.mu.Unlock()

	reservation, err := s.client.GetReservation(ctx, id)
	if err != nil {
		return models.Reservation{}, errors.NewAppError(errors.ErrCodeBackendNotFound, "reservation not found", err)
	}
	return reservation, nil
}

// checkTransition runs the target status through the state machine.
func checkTransition(current models.Reservation, target uint) error {
	state := models.GetReservationState(current.ResStatusID)
	probe := current
	switch target {
	case constants.ResStatusApproved:
		return state.Approve(&probe)
	case constants.ResStatusCancelled:
		return state.Cancel(&probe)
	default:
		return errors.ErrInvalidInput
	}
}
