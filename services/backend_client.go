package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"realty/dto"
	"realty/errors"
	"realty/models"
)

// BackendClient is the typed REST wrapper around the property
// management backend. Every store operation goes through it; the bearer
// token is attached per call, never through a global interceptor.
type BackendClient struct {
	baseURL string
	http    *http.Client
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (b *BackendClient) doJSON(ctx context.Context, method, path string, query url.Values, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	apiURL := b.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeBackend, "backend request failed", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewAppError(errors.ErrCodeBackend, "failed to parse backend response", err)
	}
	return nil
}

// doMultipart sends a multipart form: scalar fields are written as
// plain values, nested objects and arrays are JSON-stringified, files
// are attached under "files" and every imagesToDelete id is a repeated
// form field.
func (b *BackendClient) doMultipart(ctx context.Context, method, path, token string, fields interface{}, files []dto.Upload, imagesToDelete []uint, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writeFormFields(writer, fields); err != nil {
		return err
	}

	for _, id := range imagesToDelete {
		if err := writer.WriteField("imagesToDelete", strconv.FormatUint(uint64(id), 10)); err != nil {
			return err
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.FileName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("failed to copy file %s: %w", file.FileName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeBackend, "backend request failed", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewAppError(errors.ErrCodeBackend, "failed to parse backend response", err)
	}
	return nil
}

func writeFormFields(writer *multipart.Writer, fields interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return err
	}

	keys := make([]string, 0, len(asMap))
	for k := range asMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := asMap[key]
		var field string
		switch v := value.(type) {
		case map[string]interface{}, []interface{}:
			nested, err := json.Marshal(v)
			if err != nil {
				return err
			}
			field = string(nested)
		case float64:
			field = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			field = strconv.FormatBool(v)
		case string:
			field = v
		case nil:
			continue
		default:
			field = fmt.Sprint(v)
		}
		if err := writer.WriteField(key, field); err != nil {
			return err
		}
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusNotFound {
		return errors.NewAppError(errors.ErrCodeBackendNotFound, "backend returned 404", nil)
	}
	return errors.NewAppError(errors.ErrCodeBackendStatus,
		fmt.Sprintf("backend returned status %d: %s", resp.StatusCode, string(snippet)), nil)
}

// --- Objects ---

func (b *BackendClient) GetObjects(ctx context.Context, page, pageSize int) (dto.PagedObjects, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var paged dto.PagedObjects
	err := b.doJSON(ctx, http.MethodGet, "/REObject", query, "", nil, &paged)
	return paged, err
}

func (b *BackendClient) GetObjectsFiltered(ctx context.Context, filters dto.ObjectFilters, page, pageSize int) (dto.PagedObjects, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	if filters.ObjectTypeID != nil {
		query.Set("typeId", strconv.FormatUint(uint64(*filters.ObjectTypeID), 10))
	}
	if filters.DealTypeID != nil {
		query.Set("dealTypeId", strconv.FormatUint(uint64(*filters.DealTypeID), 10))
	}
	if filters.StatusID != nil {
		query.Set("statusId", strconv.FormatUint(uint64(*filters.StatusID), 10))
	}

	var paged dto.PagedObjects
	err := b.doJSON(ctx, http.MethodGet, "/REObject/filter", query, "", nil, &paged)
	return paged, err
}

func (b *BackendClient) GetObject(ctx context.Context, id uint) (models.REObject, error) {
	var object models.REObject
	err := b.doJSON(ctx, http.MethodGet, fmt.Sprintf("/REObject/%d", id), nil, "", nil, &object)
	return object, err
}

func (b *BackendClient) CreateObject(ctx context.Context, token string, req dto.REObjectRequest, files []dto.Upload) (models.REObject, error) {
	var created models.REObject
	err := b.doMultipart(ctx, http.MethodPost, "/REObject", token, req, files, nil, &created)
	return created, err
}

func (b *BackendClient) UpdateObject(ctx context.Context, token string, id uint, req dto.REObjectRequest, files []dto.Upload, imagesToDelete []uint) (models.REObject, error) {
	var updated models.REObject
	err := b.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/REObject/%d", id), token, req, files, imagesToDelete, &updated)
	return updated, err
}

func (b *BackendClient) DeleteObject(ctx context.Context, token string, id uint) error {
	return b.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/REObject/%d", id), nil, token, nil, nil)
}

// --- Reference catalogs ---

func (b *BackendClient) GetDealTypes(ctx context.Context) ([]models.DealType, error) {
	var list []models.DealType
	err := b.doJSON(ctx, http.MethodGet, "/catalog/dealtypes", nil, "", nil, &list)
	return list, err
}

func (b *BackendClient) GetObjectTypes(ctx context.Context) ([]models.ObjectType, error) {
	var list []models.ObjectType
	err := b.doJSON(ctx, http.MethodGet, "/catalog/objecttypes", nil, "", nil, &list)
	return list, err
}

func (b *BackendClient) GetStatuses(ctx context.Context) ([]models.Status, error) {
	var list []models.Status
	err := b.doJSON(ctx, http.MethodGet, "/catalog/statuses", nil, "", nil, &list)
	return list, err
}

func (b *BackendClient) GetResStatuses(ctx context.Context) ([]models.ResStatus, error) {
	var list []models.ResStatus
	err := b.doJSON(ctx, http.MethodGet, "/catalog/resstatuses", nil, "", nil, &list)
	return list, err
}

// --- Reservations ---

func (b *BackendClient) GetReservations(ctx context.Context, phoneNumber string) ([]models.Reservation, error) {
	var query url.Values
	if phoneNumber != "" {
		query = url.Values{}
		query.Set("phoneNumber", phoneNumber)
	}
	var list []models.Reservation
	err := b.doJSON(ctx, http.MethodGet, "/Reservation", query, "", nil, &list)
	return list, err
}

func (b *BackendClient) GetReservation(ctx context.Context, id uint) (models.Reservation, error) {
	var reservation models.Reservation
	err := b.doJSON(ctx, http.MethodGet, fmt.Sprintf("/Reservation/%d", id), nil, "", nil, &reservation)
	return reservation, err
}

func (b *BackendClient) CreateReservation(ctx context.Context, token string, req dto.ReservationRequest) (models.Reservation, error) {
	var created models.Reservation
	err := b.doJSON(ctx, http.MethodPost, "/Reservation", nil, token, req, &created)
	return created, err
}

func (b *BackendClient) UpdateReservation(ctx context.Context, token string, id uint, req dto.ReservationRequest) (models.Reservation, error) {
	var updated models.Reservation
	err := b.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Reservation/%d", id), nil, token, req, &updated)
	return updated, err
}

// --- Contracts ---

func (b *BackendClient) GetContracts(ctx context.Context, signDate string) ([]models.Contract, error) {
	var query url.Values
	if signDate != "" {
		query = url.Values{}
		query.Set("signDate", signDate)
	}
	var list []models.Contract
	err := b.doJSON(ctx, http.MethodGet, "/Contract", query, "", nil, &list)
	return list, err
}

func (b *BackendClient) CreateContract(ctx context.Context, token string, req dto.ContractCreate) (models.Contract, error) {
	var created models.Contract
	err := b.doJSON(ctx, http.MethodPost, "/Contract", nil, token, req, &created)
	return created, err
}

func (b *BackendClient) GetContract(ctx context.Context, id uint) (models.Contract, error) {
	var contract models.Contract
	err := b.doJSON(ctx, http.MethodGet, fmt.Sprintf("/Contract/%d", id), nil, "", nil, &contract)
	return contract, err
}

// --- Account ---

func (b *BackendClient) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := b.doJSON(ctx, http.MethodPost, "/Account/login", nil, "", req, &resp)
	return resp, err
}

func (b *BackendClient) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error) {
	var resp dto.RegisterResponse
	err := b.doJSON(ctx, http.MethodPost, "/Account/register", nil, "", req, &resp)
	return resp, err
}

func (b *BackendClient) GetProfile(ctx context.Context, token string) (models.CurrentUser, error) {
	var profile models.CurrentUser
	err := b.doJSON(ctx, http.MethodGet, "/account/profile", nil, token, nil, &profile)
	return profile, err
}

func (b *BackendClient) UpdateProfile(ctx context.Context, token string, req dto.ProfileUpdateRequest) (models.User, error) {
	var updated models.User
	err := b.doJSON(ctx, http.MethodPut, "/account/editprofile", nil, token, req, &updated)
	return updated, err
}

func (b *BackendClient) GetAllUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := b.doJSON(ctx, http.MethodGet, "/account/all-users", nil, token, nil, &users)
	return users, err
}
