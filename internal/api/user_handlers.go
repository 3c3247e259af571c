package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"lumenstudio/internal/entities"
	"lumenstudio/internal/service"
)

const dateLayout = "2006-01-02"

type UserReservationHandler struct {
	Service *service.ReservationService
}

func NewUserReservationHandler(svc *service.ReservationService) *UserReservationHandler {
	return &UserReservationHandler{Service: svc}
}

// GetAvailability resolves the bookable slots for one day. A missing date
// defaults to today in the studio's timezone; a malformed one is rejected.
func (h *UserReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	loc := h.Service.Cfg.Location

	date := time.Now().In(loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	availability, err := h.Service.ResolveAvailability(date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *UserReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateReservation(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateReservationResponse{
		ID:         created.ID,
		Status:     created.Status,
		TotalPrice: created.TotalPrice,
		Message:    "Reservation created, pending confirmation.",
	})
}

func (h *UserReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := h.Service.GetReservation(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *UserReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := h.Service.CancelReservation(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusUpdateResponse{ID: res.ID, Status: res.Status})
}

func (h *UserReservationHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.Prices())
}

// QuotePrice prices a duration plus add-on selection without touching
// storage, mirroring what the booking form shows before submitting.
func (h *UserReservationHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	minutes, err := strconv.Atoi(r.URL.Query().Get("minutes"))
	if err != nil || minutes <= 0 {
		http.Error(w, "Invalid minutes, expected a positive integer", http.StatusBadRequest)
		return
	}

	var addons entities.AddonSelection
	if raw := r.URL.Query().Get("addons"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			switch strings.TrimSpace(name) {
			case "backdrop":
				addons.Backdrop = true
			case "lights":
				addons.Lights = true
			case "assistant":
				addons.Assistant = true
			default:
				http.Error(w, "Unknown addon: "+name, http.StatusBadRequest)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, entities.QuoteResponse{
		DurationMinutes: minutes,
		Addons:          addons,
		Total:           service.Price(minutes, addons),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
