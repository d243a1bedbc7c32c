package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
	"campus-canteen/metrics"
	"campus-canteen/rate-svc/internal/domain"
	"campus-canteen/rate-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Ratings service.RatingServiceInterface
	Auth    *auth.Middleware
}

func NewHandler(ratings service.RatingServiceInterface, authMW *auth.Middleware) *Handler {
	return &Handler{Ratings: ratings, Auth: authMW}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(metrics.Instrument("rate-svc"))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	r.Handle("/api/menu-items/{id:[0-9]+}/ratings", h.Auth.Wrap(h.submitRating)).Methods("POST")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}/ratings", h.getRatings).Methods("GET")
	r.Handle("/api/menu-items/{id:[0-9]+}/ratings/recompute", h.Auth.Admin(h.recompute)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "rate-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// submitRating stores the caller's rating and then recomputes the item's
// average. A failed recompute leaves the stored rating in place.
func (h *Handler) submitRating(w http.ResponseWriter, r *http.Request) {
	menuItemID, _ := strconv.Atoi(mux.Vars(r)["id"])
	id, _ := auth.FromContext(r.Context())

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rating := domain.Rating{MenuItemID: menuItemID, UserID: id.UID, Rating: payload.Rating}
	if err := h.Ratings.Submit(r.Context(), &rating); err != nil {
		apperr.WriteError(w, err)
		return
	}

	stats, err := h.Ratings.RecomputeAverage(r.Context(), menuItemID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"rating": rating,
		"stats":  stats,
	})
}

func (h *Handler) getRatings(w http.ResponseWriter, r *http.Request) {
	menuItemID, _ := strconv.Atoi(mux.Vars(r)["id"])

	ratings, err := h.Ratings.List(r.Context(), menuItemID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	menuItemID, _ := strconv.Atoi(mux.Vars(r)["id"])

	stats, err := h.Ratings.RecomputeAverage(r.Context(), menuItemID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
