package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"lumenstudio/internal/service"
)

type AdminHandler struct {
	Service *service.ReservationService
}

func NewAdminHandler(svc *service.ReservationService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListReservations returns reservations filtered by optional date and status
// query parameters.
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, h.Service.Cfg.Location)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = &parsed
	}
	status := r.URL.Query().Get("status")

	list, err := h.Service.ListReservations(date, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateReservationStatus applies one explicit status transition.
func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.Service.UpdateStatus(id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusUpdateResponse{ID: res.ID, Status: res.Status})
}
