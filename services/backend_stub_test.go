package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"realty/dto"
	"realty/models"
)

// stubBackend is an in-memory stand-in for the property management
// backend, serving just enough of its REST surface for the store tests.
type stubBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu           sync.Mutex
	objects      []models.REObject
	reservations map[uint]models.Reservation
	contracts    []models.Contract
	nextContract uint
	requests     []string
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	b := &stubBackend{
		t:            t,
		reservations: map[uint]models.Reservation{},
		nextContract: 1,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *stubBackend) client() *BackendClient {
	return NewBackendClient(b.srv.URL)
}

// requestLog returns the "METHOD /path" lines seen so far.
func (b *stubBackend) requestLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	log := make([]string, len(b.requests))
	copy(log, b.requests)
	return log
}

func (b *stubBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()

	switch {
	case r.URL.Path == "/REObject" && r.Method == http.MethodGet:
		b.serveObjectPage(w, r, b.objectsSnapshot())
	case r.URL.Path == "/REObject/filter" && r.Method == http.MethodGet:
		b.serveObjectPage(w, r, b.filterObjects(r))
	case strings.HasPrefix(r.URL.Path, "/REObject/") && r.Method == http.MethodGet:
		b.serveObject(w, r)
	case r.URL.Path == "/REObject" && r.Method == http.MethodPost:
		b.createObject(w, r)
	case strings.HasPrefix(r.URL.Path, "/REObject/") && r.Method == http.MethodDelete:
		b.deleteObject(w, r)
	case r.URL.Path == "/Reservation" && r.Method == http.MethodGet:
		writeJSON(w, b.reservationList())
	case r.URL.Path == "/Reservation" && r.Method == http.MethodPost:
		b.createReservation(w, r)
	case strings.HasPrefix(r.URL.Path, "/Reservation/") && r.Method == http.MethodGet:
		b.serveReservation(w, r)
	case strings.HasPrefix(r.URL.Path, "/Reservation/") && r.Method == http.MethodPut:
		b.updateReservation(w, r)
	case r.URL.Path == "/Contract" && r.Method == http.MethodGet:
		b.mu.Lock()
		list := append([]models.Contract(nil), b.contracts...)
		b.mu.Unlock()
		writeJSON(w, list)
	case r.URL.Path == "/Contract" && r.Method == http.MethodPost:
		b.createContract(w, r)
	case r.URL.Path == "/Account/login" && r.Method == http.MethodPost:
		b.login(w, r)
	case r.URL.Path == "/account/profile" && r.Method == http.MethodGet:
		writeJSON(w, models.CurrentUser{User: models.User{ID: "u1", UserName: "resident"}})
	default:
		http.NotFound(w, r)
	}
}

func (b *stubBackend) objectsSnapshot() []models.REObject {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.REObject(nil), b.objects...)
}

func (b *stubBackend) filterObjects(r *http.Request) []models.REObject {
	var filtered []models.REObject
	for _, object := range b.objectsSnapshot() {
		if v := r.URL.Query().Get("typeId"); v != "" && v != strconv.FormatUint(uint64(object.ObjectTypeID), 10) {
			continue
		}
		if v := r.URL.Query().Get("dealTypeId"); v != "" && v != strconv.FormatUint(uint64(object.DealTypeID), 10) {
			continue
		}
		if v := r.URL.Query().Get("statusId"); v != "" && v != strconv.FormatUint(uint64(object.StatusID), 10) {
			continue
		}
		filtered = append(filtered, object)
	}
	return filtered
}

func (b *stubBackend) serveObjectPage(w http.ResponseWriter, r *http.Request, all []models.REObject) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = len(all)
	}

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	totalPages := (len(all) + pageSize - 1) / pageSize

	writeJSON(w, dto.PagedObjects{
		Items:       all[start:end],
		TotalCount:  len(all),
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}

func (b *stubBackend) serveObject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path)
	for _, object := range b.objectsSnapshot() {
		if object.ID == id {
			writeJSON(w, object)
			return
		}
	}
	http.NotFound(w, r)
}

func (b *stubBackend) createObject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rooms, _ := strconv.Atoi(r.FormValue("rooms"))
	floors, _ := strconv.Atoi(r.FormValue("floors"))
	square, _ := strconv.ParseFloat(r.FormValue("square"), 64)
	building, _ := strconv.Atoi(r.FormValue("building"))
	price, _ := strconv.Atoi(r.FormValue("price"))
	dealTypeID, _ := strconv.ParseUint(r.FormValue("dealTypeId"), 10, 32)
	objectTypeID, _ := strconv.ParseUint(r.FormValue("objectTypeId"), 10, 32)
	statusID, _ := strconv.ParseUint(r.FormValue("statusId"), 10, 32)

	var roomNum *int
	if raw := r.FormValue("roomnum"); raw != "" {
		n, _ := strconv.Atoi(raw)
		roomNum = &n
	}

	b.mu.Lock()
	created := models.REObject{
		ID:           uint(len(b.objects) + 100),
		Rooms:        rooms,
		Floors:       floors,
		Square:       square,
		Street:       r.FormValue("street"),
		Building:     building,
		RoomNum:      roomNum,
		Price:        price,
		DealTypeID:   uint(dealTypeID),
		ObjectTypeID: uint(objectTypeID),
		StatusID:     uint(statusID),
	}
	b.objects = append([]models.REObject{created}, b.objects...)
	b.mu.Unlock()
	writeJSON(w, created)
}

func (b *stubBackend) deleteObject(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path)
	b.mu.Lock()
	for i, object := range b.objects {
		if object.ID == id {
			b.objects = append(b.objects[:i], b.objects[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *stubBackend) reservationList() []models.Reservation {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := make([]models.Reservation, 0, len(b.reservations))
	for _, reservation := range b.reservations {
		list = append(list, reservation)
	}
	return list
}

func (b *stubBackend) createReservation(w http.ResponseWriter, r *http.Request) {
	var req dto.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	created := models.Reservation{
		ID:          uint(len(b.reservations) + 1),
		ObjectID:    req.ObjectID,
		UserID:      req.UserID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ResStatusID: req.ResStatusID,
	}
	b.reservations[created.ID] = created
	b.mu.Unlock()
	writeJSON(w, created)
}

func (b *stubBackend) serveReservation(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path)
	b.mu.Lock()
	reservation, ok := b.reservations[id]
	b.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, reservation)
}

func (b *stubBackend) updateReservation(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path)
	var req dto.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	reservation, ok := b.reservations[id]
	if !ok {
		b.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	reservation.ResStatusID = req.ResStatusID
	b.reservations[id] = reservation
	b.mu.Unlock()
	writeJSON(w, reservation)
}

func (b *stubBackend) createContract(w http.ResponseWriter, r *http.Request) {
	var req dto.ContractCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	created := models.Contract{
		ID:            b.nextContract,
		SignDate:      req.SignDate,
		ReservationID: req.ReservationID,
		UserID:        req.UserID,
		Total:         req.Total,
	}
	b.nextContract++
	b.contracts = append(b.contracts, created)
	b.mu.Unlock()
	writeJSON(w, created)
}

func (b *stubBackend) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password != "secret123" {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, dto.LoginResponse{
		Token:    makeToken("u1", "user"),
		UserName: req.UserName,
		UserRole: "user",
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(path string) uint {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	id, _ := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	return uint(id)
}

// makeToken builds an unsigned JWT-shaped token the way the identity
// service shapes its claims. Only the payload segment is ever read.
func makeToken(userID, role string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]interface{}{
		"sub":  userID,
		"role": role,
	})
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(payload))
}
