package services

import (
	"context"
	"sync"
	"time"

	"realty/constants"
	"realty/dto"
	"realty/errors"
	"realty/models"
	"realty/services/logger"
)

// ContractService is the contract store. Contracts are append-only;
// issuing one is also the only way a reservation becomes approved.
type ContractService struct {
	client       *BackendClient
	reservations *ReservationService
	log          logger.Logger

	mu        sync.Mutex
	contracts []models.Contract
}

type ContractServiceOptions struct {
	Client       *BackendClient
	Reservations *ReservationService
	Logger       logger.Logger
}

func NewContractService(opts ContractServiceOptions) *ContractService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &ContractService{
		client:       opts.Client,
		reservations: opts.Reservations,
		log:          opts.Logger,
	}
}

// Contracts returns a snapshot of the cached list.
func (s *ContractService) Contracts() []models.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.Contract, len(s.contracts))
	copy(snapshot, s.contracts)
	return snapshot
}

// FetchAll replaces the list, optionally filtered to one sign date.
func (s *ContractService) FetchAll(ctx context.Context, signDate string) error {
	list, err := s.client.GetContracts(ctx, signDate)
	if err != nil {
		s.log.Error("fetch contracts: %v", err)
		return err
	}

	s.mu.Lock()
	s.contracts = list
	s.mu.Unlock()
	return nil
}

// Create issues a contract for a held reservation. The total is derived
// from the referenced object's price at creation time, never taken from
// the caller. The held-to-approved transition is explicit: first the
// contract is posted, then the reservation status update is issued, in
// that order, then both lists are refreshed.
func (s *ContractService) Create(ctx context.Context, token, userID string, req dto.ContractRequest) (models.Contract, error) {
	reservation, err := s.client.GetReservation(ctx, req.ReservationID)
	if err != nil {
		return models.Contract{}, errors.NewAppError(errors.ErrCodeBackendNotFound, "reservation not found", err)
	}

	if reservation.ResStatusID != constants.ResStatusHeld {
		return models.Contract{}, errors.NewAppError(errors.ErrCodeNotHeld,
			"contract requires a held reservation", errors.ErrReservationNotHeld)
	}
	if reservation.Object == nil {
		return models.Contract{}, errors.NewAppError(errors.ErrCodeBackend,
			"reservation has no resolved object", errors.ErrObjectNotFound)
	}

	signDate := req.SignDate
	if signDate.IsZero() {
		signDate = time.Now()
	}

	payload := dto.ContractCreate{
		ReservationID: req.ReservationID,
		UserID:        userID,
		SignDate:      signDate,
		Total:         reservation.Object.Price,
	}

	created, err := s.client.CreateContract(ctx, token, payload)
	if err != nil {
		return models.Contract{}, err
	}

	if s.reservations != nil {
		if _, err := s.reservations.Approve(ctx, token, req.ReservationID); err != nil {
			// The contract exists; surface the stuck transition loudly.
			s.log.Error("approve reservation %d after contract %d: %v", req.ReservationID, created.ID, err)
		}
	}

	if err := s.FetchAll(ctx, ""); err != nil {
		s.log.Error("refresh after contract create: %v", err)
	}
	return created, nil
}

// GetByID fetches one contract with its nested reservation, object and
// user details for the detail and print views.
func (s *ContractService) GetByID(ctx context.Context, id uint) (models.Contract, error) {
	contract, err := s.client.GetContract(ctx, id)
	if err != nil {
		return models.Contract{}, err
	}
	return contract, nil
}
