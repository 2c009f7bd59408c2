package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"realty/constants"
	"realty/dto"
	"realty/models"
	"realty/response"
	"realty/services/logger"
)

// CatalogService is the property catalog store: it owns the in-memory
// list of property records, the reference catalogs and the pagination
// window, all synchronized with the backend by wholesale replacement
// after every fetch.
type CatalogService struct {
	client   *BackendClient
	rdb      *redis.Client
	log      logger.Logger
	pageSize int

	mu          sync.Mutex
	objects     []models.REObject
	totalCount  int
	currentPage int
	totalPages  int

	// Overlapping fetches complete in arbitrary order; only the
	// newest issued request may replace the list.
	lastIssued  uint64
	lastApplied uint64

	dealTypes   []models.DealType
	objectTypes []models.ObjectType
	statuses    []models.Status
	resStatuses []models.ResStatus
}

type CatalogServiceOptions struct {
	Client   *BackendClient
	Redis    *redis.Client
	Logger   logger.Logger
	PageSize int
}

func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = constants.DefaultPageSize
	}
	return &CatalogService{
		client:   opts.Client,
		rdb:      opts.Redis,
		log:      opts.Logger,
		pageSize: opts.PageSize,
	}
}

// PageSize is the configured page window size.
func (s *CatalogService) PageSize() int {
	return s.pageSize
}

// Objects returns a snapshot of the cached list.
func (s *CatalogService) Objects() []models.REObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.REObject, len(s.objects))
	copy(snapshot, s.objects)
	return snapshot
}

// Pagination returns the current page window.
func (s *CatalogService) Pagination() response.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return response.Pagination{
		Page:       s.currentPage,
		PageSize:   s.pageSize,
		Total:      s.totalCount,
		TotalPages: s.totalPages,
	}
}

func (s *CatalogService) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIssued++
	return s.lastIssued
}

// apply replaces the list unless a newer request already did.
func (s *CatalogService) apply(generation uint64, paged dto.PagedObjects) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation <= s.lastApplied {
		return false
	}
	s.lastApplied = generation
	s.objects = paged.Items
	s.totalCount = paged.TotalCount
	s.currentPage = paged.CurrentPage
	s.totalPages = paged.TotalPages
	return true
}

// FetchPaginated replaces the cached list with the requested page. On
// error the state is left unchanged.
func (s *CatalogService) FetchPaginated(ctx context.Context, page, pageSize int) error {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > constants.MaxPageSize {
		pageSize = s.pageSize
	}

	generation := s.issue()
	paged, err := s.client.GetObjects(ctx, page, pageSize)
	if err != nil {
		s.log.Error("fetch objects page %d: %v", page, err)
		return err
	}
	if !s.apply(generation, paged) {
		s.log.Debug("dropped stale object list response for page %d", page)
	}
	return nil
}

// FetchFiltered narrows the list by the optional equality filters and
// resets to the requested page.
func (s *CatalogService) FetchFiltered(ctx context.Context, filters dto.ObjectFilters, page int) error {
	if page < 1 {
		page = 1
	}

	generation := s.issue()
	paged, err := s.client.GetObjectsFiltered(ctx, filters, page, s.pageSize)
	if err != nil {
		s.log.Error("fetch filtered objects page %d: %v", page, err)
		return err
	}
	if !s.apply(generation, paged) {
		s.log.Debug("dropped stale filtered response for page %d", page)
	}
	return nil
}

// Create posts a new record with its files and then refetches page 1 so
// the list reflects authoritative ordering and pagination.
func (s *CatalogService) Create(ctx context.Context, token string, req dto.REObjectRequest, files []dto.Upload) (models.REObject, error) {
	created, err := s.client.CreateObject(ctx, token, req, files)
	if err != nil {
		return models.REObject{}, err
	}
	if err := s.FetchPaginated(ctx, 1, s.pageSize); err != nil {
		s.log.Error("refresh after create: %v", err)
	}
	return created, nil
}

// Update sends a multipart PUT and refetches page 1. The server's
// updated record is returned for immediate display.
func (s *CatalogService) Update(ctx context.Context, token string, id uint, req dto.REObjectRequest, files []dto.Upload, imagesToDelete []uint) (models.REObject, error) {
	updated, err := s.client.UpdateObject(ctx, token, id, req, files, imagesToDelete)
	if err != nil {
		return models.REObject{}, err
	}
	if err := s.FetchPaginated(ctx, 1, s.pageSize); err != nil {
		s.log.Error("refresh after update: %v", err)
	}
	return updated, nil
}

// Delete removes the record on the backend and splices it out of the
// local list without a refetch. Local pagination counts may drift from
// server truth until the next fetch.
func (s *CatalogService) Delete(ctx context.Context, token string, id uint) error {
	if err := s.client.DeleteObject(ctx, token, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, object := range s.objects {
		if object.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID fetches a single record. A record not present locally is
// appended; an existing entry is never replaced with the fresher copy.
func (s *CatalogService) GetByID(ctx context.Context, id uint) (models.REObject, error) {
	object, err := s.client.GetObject(ctx, id)
	if err != nil {
		return models.REObject{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cached := range s.objects {
		if cached.ID == id {
			return object, nil
		}
	}
	s.objects = append(s.objects, object)
	return object, nil
}

// --- Reference catalogs ---
//
// Small, effectively static tables: fetched once, held for the session
// and shared through redis with a TTL.

func (s *CatalogService) DealTypes(ctx context.Context) ([]models.DealType, error) {
	s.mu.Lock()
	if len(s.dealTypes) > 0 {
		defer s.mu.Unlock()
		return s.dealTypes, nil
	}
	s.mu.Unlock()

	var list []models.DealType
	cacheKey := "catalog:dealtypes"
	if err := GetFromRedis(ctx, s.rdb, cacheKey, &list); err != nil {
		s.log.Error("read %s from redis: %v", cacheKey, err)
	}
	if len(list) == 0 {
		var err error
		list, err = s.client.GetDealTypes(ctx)
		if err != nil {
			return nil, err
		}
		if err := SetToRedis(ctx, s.rdb, cacheKey, list, 60*time.Minute); err != nil {
			s.log.Error("cache %s: %v", cacheKey, err)
		}
	}

	s.mu.Lock()
	s.dealTypes = list
	s.mu.Unlock()
	return list, nil
}

func (s *CatalogService) ObjectTypes(ctx context.Context) ([]models.ObjectType, error) {
	s.mu.Lock()
	if len(s.objectTypes) > 0 {
		defer s.mu.Unlock()
		return s.objectTypes, nil
	}
	s.mu.Unlock()

	var list []models.ObjectType
	cacheKey := "catalog:objecttypes"
	if err := GetFromRedis(ctx, s.rdb, cacheKey, &list); err != nil {
		s.log.Error("read %s from redis: %v", cacheKey, err)
	}
	if len(list) == 0 {
		var err error
		list, err = s.client.GetObjectTypes(ctx)
		if err != nil {
			return nil, err
		}
		if err := SetToRedis(ctx, s.rdb, cacheKey, list, 60*time.Minute); err != nil {
			s.log.Error("cache %s: %v", cacheKey, err)
		}
	}

	s.mu.Lock()
	s.objectTypes = list
	s.mu.Unlock()
	return list, nil
}

func (s *CatalogService) Statuses(ctx context.Context) ([]models.Status, error) {
	s.mu.Lock()
	if len(s.statuses) > 0 {
		defer s.mu.Unlock()
		return s.statuses, nil
	}
	s.mu.Unlock()

	var list []models.Status
	cacheKey := "catalog:statuses"
	if err := GetFromRedis(ctx, s.rdb, cacheKey, &list); err != nil {
		s.log.Error("read %s from redis: %v", cacheKey, err)
	}
	if len(list) == 0 {
		var err error
		list, err = s.client.GetStatuses(ctx)
		if err != nil {
			return nil, err
		}
		if err := SetToRedis(ctx, s.rdb, cacheKey, list, 60*time.Minute); err != nil {
			s.log.Error("cache %s: %v", cacheKey, err)
		}
	}

	s.mu.Lock()
	s.statuses = list
	s.mu.Unlock()
	return list, nil
}

func (s *CatalogService) ResStatuses(ctx context.Context) ([]models.ResStatus, error) {
	s.mu.Lock()
	if len(s.resStatuses) > 0 {
		defer s.mu.Unlock()
		return s.resStatuses, nil
	}
	s.mu.Unlock()

	var list []models.ResStatus
	cacheKey := "catalog:resstatuses"
	if err := GetFromRedis(ctx, s.rdb, cacheKey, &list); err != nil {
		s.log.Error("read %s from redis: %v", cacheKey, err)
	}
	if len(list) == 0 {
		var err error
		list, err = s.client.GetResStatuses(ctx)
		if err != nil {
			return nil, err
		}
		if err := SetToRedis(ctx, s.rdb, cacheKey, list, 60*time.Minute); err != nil {
			s.log.Error("cache %s: %v", cacheKey, err)
		}
	}

	s.mu.Lock()
	s.resStatuses = list
	s.mu.Unlock()
	return list, nil
}
