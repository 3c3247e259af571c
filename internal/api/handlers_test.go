package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"lumenstudio/internal/db"
	"lumenstudio/internal/entities"
	apperrors "lumenstudio/internal/errors"
	"lumenstudio/internal/service"
)

type storeStub struct {
	active []db.Reservation
	byID   map[string]*db.Reservation
}

func (s *storeStub) ListActiveBetween(windowStart, windowEnd time.Time) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range s.active {
		if res.StartAt.Before(windowEnd) && res.EndAt.After(windowStart) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (s *storeStub) CreateReservation(res *db.Reservation) error {
	if s.byID == nil {
		s.byID = map[string]*db.Reservation{}
	}
	s.byID[res.ID] = res
	return nil
}

func (s *storeStub) GetReservationByID(id string) (*db.Reservation, error) {
	if res, ok := s.byID[id]; ok {
		copied := *res
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *storeStub) UpdateReservationStatus(id, from, to string) error {
	if res, ok := s.byID[id]; ok {
		res.Status = to
		return nil
	}
	return apperrors.ErrNotFound
}

func (s *storeStub) ListReservations(windowStart, windowEnd time.Time, status string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range s.byID {
		if status == "" || res.Status == status {
			out = append(out, *res)
		}
	}
	return out, nil
}

func newTestRouter(store *storeStub) *mux.Router {
	cfg := entities.DayConfig{OpenHour: 9, CloseHour: 21, SlotMinutes: 60, Location: time.UTC}
	svc := service.NewReservationService(store, cfg)
	userHandler := NewUserReservationHandler(svc)
	adminHandler := NewAdminHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/availability", userHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations", adminHandler.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", userHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", adminHandler.UpdateReservationStatus).Methods("PATCH")
	r.HandleFunc("/api/reservations/{id}", userHandler.CancelReservation).Methods("DELETE")
	r.HandleFunc("/api/prices", userHandler.GetPrices).Methods("GET")
	r.HandleFunc("/api/prices/quote", userHandler.QuotePrice).Methods("GET")
	return r
}

func doRequest(t *testing.T, router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetAvailability_ReferenceDay(t *testing.T) {
	store := &storeStub{active: []db.Reservation{
		{
			ID:      "r1",
			Status:  db.StatusConfirmed,
			StartAt: time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC),
		},
	}}
	rec := doRequest(t, newTestRouter(store), "GET", "/api/availability?date=2025-06-14", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got entities.DayAvailability
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Date != "2025-06-14" {
		t.Errorf("date = %q", got.Date)
	}
	if len(got.Slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(got.Slots))
	}
	unavailable := 0
	for _, slot := range got.Slots {
		if !slot.Available {
			unavailable++
			if slot.StartAt.Hour() != 10 {
				t.Errorf("wrong slot marked unavailable: %v", slot.StartAt)
			}
		}
	}
	if unavailable != 1 {
		t.Errorf("expected exactly 1 unavailable slot, got %d", unavailable)
	}
}

func TestGetAvailability_DefaultsToToday(t *testing.T) {
	rec := doRequest(t, newTestRouter(&storeStub{}), "GET", "/api/availability", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got entities.DayAvailability
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("date = %q, want today", got.Date)
	}
}

func TestGetAvailability_BadDate(t *testing.T) {
	rec := doRequest(t, newTestRouter(&storeStub{}), "GET", "/api/availability?date=14-06-2025", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservation_Created(t *testing.T) {
	body := `{
		"start": "2025-06-14T10:00:00Z",
		"end": "2025-06-14T11:30:00Z",
		"name": "Jane Doe",
		"email": "jane@email.com",
		"addons": {"backdrop": true}
	}`
	rec := doRequest(t, newTestRouter(&storeStub{}), "POST", "/api/reservations", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got CreateReservationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.ID == "" {
		t.Error("expected an assigned id")
	}
	if got.Status != db.StatusPending {
		t.Errorf("status = %q, want PENDING", got.Status)
	}
	if got.TotalPrice != 125 {
		t.Errorf("totalPrice = %d, want 125", got.TotalPrice)
	}
}

func TestCreateReservation_InvalidBody(t *testing.T) {
	rec := doRequest(t, newTestRouter(&storeStub{}), "POST", "/api/reservations", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservation_InvalidRange(t *testing.T) {
	body := `{
		"start": "2025-01-01T10:00:00Z",
		"end": "2025-01-01T09:00:00Z",
		"name": "Jane Doe",
		"email": "jane@email.com"
	}`
	rec := doRequest(t, newTestRouter(&storeStub{}), "POST", "/api/reservations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservation_Conflict(t *testing.T) {
	store := &storeStub{active: []db.Reservation{
		{
			ID:      "r1",
			Status:  db.StatusConfirmed,
			StartAt: time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC),
		},
	}}
	body := `{
		"start": "2025-06-14T14:00:00Z",
		"end": "2025-06-14T15:00:00Z",
		"name": "Jane Doe",
		"email": "jane@email.com"
	}`
	rec := doRequest(t, newTestRouter(store), "POST", "/api/reservations", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetReservation(t *testing.T) {
	store := &storeStub{byID: map[string]*db.Reservation{
		"abc": {ID: "abc", Name: "Jane Doe", Email: "jane@email.com", Status: db.StatusPending},
	}}
	router := newTestRouter(store)

	rec := doRequest(t, router, "GET", "/api/reservations/abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doRequest(t, router, "GET", "/api/reservations/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateReservationStatus(t *testing.T) {
	store := &storeStub{byID: map[string]*db.Reservation{
		"abc": {ID: "abc", Status: db.StatusPending},
	}}
	router := newTestRouter(store)

	rec := doRequest(t, router, "PATCH", "/api/reservations/abc", `{"status":"CONFIRMED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got StatusUpdateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Status != db.StatusConfirmed {
		t.Errorf("status = %q, want CONFIRMED", got.Status)
	}

	// Unrecognized status value.
	rec = doRequest(t, router, "PATCH", "/api/reservations/abc", `{"status":"DONE"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// CONFIRMED cannot go back to PENDING.
	rec = doRequest(t, router, "PATCH", "/api/reservations/abc", `{"status":"PENDING"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCancelReservation(t *testing.T) {
	store := &storeStub{byID: map[string]*db.Reservation{
		"abc": {ID: "abc", Status: db.StatusConfirmed},
	}}
	rec := doRequest(t, newTestRouter(store), "DELETE", "/api/reservations/abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.byID["abc"].Status != db.StatusCancelled {
		t.Errorf("status = %q, want CANCELLED", store.byID["abc"].Status)
	}
}

func TestGetPrices(t *testing.T) {
	rec := doRequest(t, newTestRouter(&storeStub{}), "GET", "/api/prices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got entities.PriceBook
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.BaseUpToHour != 60 {
		t.Errorf("base = %d, want 60", got.BaseUpToHour)
	}
}

func TestQuotePrice(t *testing.T) {
	router := newTestRouter(&storeStub{})

	rec := doRequest(t, router, "GET", "/api/prices/quote?minutes=90&addons=backdrop", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got entities.QuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Total != 125 {
		t.Errorf("total = %d, want 125", got.Total)
	}

	rec = doRequest(t, router, "GET", "/api/prices/quote?minutes=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, router, "GET", "/api/prices/quote?minutes=60&addons=catering", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
