package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"campus-canteen/apperr"
	"campus-canteen/auth"
	"campus-canteen/metrics"
	"campus-canteen/order-svc/internal/domain"
	"campus-canteen/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders    service.OrderServiceInterface
	Lifecycle service.LifecycleInterface
	Auth      *auth.Middleware
}

func NewHandler(orderSvc service.OrderServiceInterface, lifecycle service.LifecycleInterface, authMW *auth.Middleware) *Handler {
	return &Handler{
		Orders:    orderSvc,
		Lifecycle: lifecycle,
		Auth:      authMW,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(metrics.Instrument("order-svc"))

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	r.Handle("/api/checkout/quote", h.Auth.Wrap(h.quote)).Methods("POST")

	r.Handle("/api/orders", h.Auth.Wrap(h.createOrder)).Methods("POST")
	r.Handle("/api/orders", h.Auth.Admin(h.getOrders)).Methods("GET")
	r.Handle("/api/orders/mine", h.Auth.Wrap(h.getMyOrders)).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}", h.Auth.Wrap(h.getOrder)).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}/qrcode", h.Auth.Wrap(h.getOrderQRCode)).Methods("GET")
	r.Handle("/api/orders/{id:[0-9]+}/status", h.Auth.Admin(h.updateStatus)).Methods("PATCH")
	r.Handle("/api/orders/{id:[0-9]+}/advance", h.Auth.Admin(h.advanceOrder)).Methods("POST")
	r.Handle("/api/orders/{id:[0-9]+}/cancel", h.Auth.Wrap(h.cancelOrder)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []domain.OrderItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	quote, err := h.Orders.Quote(r.Context(), req.Items)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var draft domain.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	draft.UserID = id.UID

	order, err := h.Orders.Place(r.Context(), &draft)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	order.QRCode = h.Orders.QRLink(order.ID)
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListAll(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getMyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	orders, err := h.Orders.ListByUser(r.Context(), id.UID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, ok := h.visibleOrder(w, r, orderID)
	if !ok {
		return
	}
	order.QRCode = h.Orders.QRLink(order.ID)
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, ok := h.visibleOrder(w, r, orderID); !ok {
		return
	}

	qrCode, err := h.Orders.GetQRCode(r.Context(), orderID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Status domain.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Invalid("status", err.Error()))
		return
	}

	order, err := h.Lifecycle.ApplyTransition(r.Context(), orderID, req.Status)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Lifecycle.Advance(r.Context(), orderID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	id, _ := auth.FromContext(r.Context())

	order, err := h.Lifecycle.Cancel(r.Context(), orderID, id)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// visibleOrder loads an order the caller may see. Other students' orders are
// reported as missing.
func (h *Handler) visibleOrder(w http.ResponseWriter, r *http.Request, orderID int) (*domain.Order, bool) {
	id, _ := auth.FromContext(r.Context())
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		apperr.WriteError(w, err)
		return nil, false
	}
	if !id.IsAdmin() && order.UserID != id.UID {
		http.Error(w, "Order not found", http.StatusNotFound)
		return nil, false
	}
	return order, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
