package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
	"campus-canteen/metrics"
	"campus-canteen/report-svc/internal/service"

	"github.com/gorilla/mux"
)

const defaultLimit = 10

type Handler struct {
	Reports  service.ReportServiceInterface
	Auth     *auth.Middleware
	Location *time.Location
}

func NewHandler(reports service.ReportServiceInterface, authMW *auth.Middleware, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{Reports: reports, Auth: authMW, Location: loc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(metrics.Instrument("report-svc"))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	r.Handle("/api/reports/daily", h.Auth.Admin(h.getDailyReport)).Methods("GET")
	r.Handle("/api/reports/daily/export", h.Auth.Admin(h.exportDailyReport)).Methods("GET")
	r.Handle("/api/reports/top-rated", h.Auth.Admin(h.getTopRated)).Methods("GET")
	r.Handle("/api/reports/popular-today", h.Auth.Admin(h.getPopularToday)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "report-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getDailyReport(w http.ResponseWriter, r *http.Request) {
	day, err := h.reportDay(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	report, err := h.Reports.Daily(r.Context(), day)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) exportDailyReport(w http.ResponseWriter, r *http.Request) {
	day, err := h.reportDay(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	report, err := h.Reports.Daily(r.Context(), day)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ExportFilename()+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Export()))
}

func (h *Handler) getTopRated(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	ranked, err := h.Reports.TopRated(r.Context(), limit)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (h *Handler) getPopularToday(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	ranked, err := h.Reports.PopularToday(r.Context(), limit)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

// reportDay reads ?date=YYYY-MM-DD in the report time zone, defaulting to
// today.
func (h *Handler) reportDay(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().In(h.Location), nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, h.Location)
	if err != nil {
		return time.Time{}, apperr.Invalid("date", "must be formatted YYYY-MM-DD")
	}
	return day, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return 0, apperr.Invalid("limit", "must be between 1 and 100")
	}
	return limit, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
