package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"campus-canteen/metrics"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL   string
	OrderSvcURL  string
	RateSvcURL   string
	ReportSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

// ratingsPath matches /api/menu-items/{id}/ratings and its sub-paths. It is
// checked before the menu-items prefix, which belongs to menu-svc.
var ratingsPath = regexp.MustCompile(`^/api/menu-items/[0-9]+/ratings(/.*)?$`)

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Printf("PROXY: %s %s -> %s%s", r.Method, r.URL.Path, targetURL, r.URL.Path)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Printf("ERROR: Failed to create request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("ERROR: Failed to proxy to %s: %v", targetURL, err)
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: Failed to copy response: %v", err)
	}
}

// Target returns the base URL of the service that owns path, or "" when no
// service does.
func (g *Gateway) Target(path string) string {
	switch {
	case ratingsPath.MatchString(path):
		return g.config.RateSvcURL
	case strings.HasPrefix(path, "/api/orders"), strings.HasPrefix(path, "/api/checkout/"):
		return g.config.OrderSvcURL
	case strings.HasPrefix(path, "/api/reports/"):
		return g.config.ReportSvcURL
	case strings.HasPrefix(path, "/api/menu-items"),
		strings.HasPrefix(path, "/api/categories"),
		strings.HasPrefix(path, "/api/settings"),
		strings.HasPrefix(path, "/api/users"),
		strings.HasPrefix(path, "/uploads/"):
		return g.config.MenuSvcURL
	}
	return ""
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("ROUTE: %s %s", r.Method, path)

	target := g.Target(path)
	if target == "" {
		log.Printf("[GATEWAY] Unmatched route: %s", path)
		http.Error(w, "route not found", http.StatusNotFound)
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Instrument("api-gateway"))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
