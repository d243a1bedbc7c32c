package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-canteen/apperr"
	"campus-canteen/auth/authtest"
	httpapi "campus-canteen/order-svc/internal/api/http"
	"campus-canteen/order-svc/internal/domain"
	"campus-canteen/order-svc/internal/mocks"
	"campus-canteen/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo *mocks.OrderRepository) *mux.Router {
	handler := httpapi.NewHandler(
		service.NewOrderService(repo, nil, nil),
		service.NewLifecycle(repo, nil),
		authtest.NewMiddleware(authtest.Campus()),
	)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		body         string
		prepareMocks func(repo *mocks.OrderRepository)
		expectedCode int
	}{
		{
			name: "placed",
			uid:  "stud-1",
			body: `{"items":[{"menu_item_id":1,"name":"Masala Dosa","price":45,"quantity":2},{"menu_item_id":2,"name":"Filter Coffee","price":12,"quantity":1}],"total_amount":107.10,"order_type":"Dine-In","payment_method":"Cash"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("CheckoutRules", mock.Anything).Return(domain.DefaultCheckoutRules(), nil).Once()
				repo.On("MenuItemsByID", mock.Anything, []int{1, 2}).Return(map[int]domain.CatalogItem{
					1: {ID: 1, Name: "Masala Dosa", Price: 45, InStock: true},
					2: {ID: 2, Name: "Filter Coffee", Price: 12, InStock: true},
				}, nil).Once()
				repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.UserID == "stud-1"
				})).Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 11 }).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "price_below_catalog",
			uid:  "stud-1",
			body: `{"items":[{"menu_item_id":1,"name":"Tea","price":0.01,"quantity":1}],"total_amount":0.01,"order_type":"Take Away","payment_method":"Online"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("CheckoutRules", mock.Anything).Return(domain.DefaultCheckoutRules(), nil).Once()
				repo.On("MenuItemsByID", mock.Anything, []int{1}).Return(map[int]domain.CatalogItem{
					1: {ID: 1, Name: "Tea", Price: 10, InStock: true},
				}, nil).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "anonymous",
			body:         `{}`,
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid_json",
			uid:          "stud-1",
			body:         `{invalid}`,
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty_cart",
			uid:          "stud-1",
			body:         `{"items":[],"total_amount":10,"order_type":"Dine-In","payment_method":"Cash"}`,
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "store_down",
			uid:  "stud-1",
			body: `{"items":[{"menu_item_id":1,"name":"Tea","price":10,"quantity":1}],"total_amount":10.50,"order_type":"Take Away","payment_method":"Online"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("CheckoutRules", mock.Anything).Return(domain.CheckoutRules{}, apperr.ErrTimeout).Once()
			},
			expectedCode: http.StatusGatewayTimeout,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			testCase.prepareMocks(repo)

			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			authtest.Authorize(req, testCase.uid)
			w := httptest.NewRecorder()

			newTestRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestCreateOrderHandler_ResponseBody(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("CheckoutRules", mock.Anything).Return(domain.DefaultCheckoutRules(), nil).Once()
	repo.On("MenuItemsByID", mock.Anything, []int{1}).Return(map[int]domain.CatalogItem{
		1: {ID: 1, Name: "Tea", Price: 10, InStock: true},
	}, nil).Once()
	repo.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 11 }).Return(nil).Once()

	body := `{"items":[{"menu_item_id":1,"name":"Tea","price":10,"quantity":1}],"total_amount":10.50,"order_type":"Take Away","payment_method":"Online"}`
	req := authtest.Authorize(httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(body)), "stud-1")
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var order domain.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	assert.Equal(t, 11, order.ID)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.Equal(t, "/api/orders/11/qrcode", order.QRCode)
}

func TestListOrdersHandlers(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		uid          string
		prepareMocks func(repo *mocks.OrderRepository)
		expectedCode int
	}{
		{
			name: "mine",
			path: "/api/orders/mine",
			uid:  "stud-1",
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("ListOrdersByUser", mock.Anything, "stud-1").Return([]domain.Order{{ID: 1}}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "all_as_admin",
			path: "/api/orders",
			uid:  "admin-1",
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "all_as_student",
			path:         "/api/orders",
			uid:          "stud-1",
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			testCase.prepareMocks(repo)

			req := authtest.Authorize(httptest.NewRequest("GET", testCase.path, nil), testCase.uid)
			w := httptest.NewRecorder()
			newTestRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestGetOrderHandler_Visibility(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		expectedCode int
	}{
		{name: "owner", uid: "stud-1", expectedCode: http.StatusOK},
		{name: "admin", uid: "admin-1", expectedCode: http.StatusOK},
		{name: "other_student", uid: "stud-2", expectedCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			repo.On("GetOrder", mock.Anything, 1).Return(orderIn(domain.StatusPlaced), nil).Once()

			req := authtest.Authorize(httptest.NewRequest("GET", "/api/orders/1", nil), testCase.uid)
			w := httptest.NewRecorder()
			newTestRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		body         string
		prepareMocks func(repo *mocks.OrderRepository)
		expectedCode int
	}{
		{
			name: "advance_by_admin",
			uid:  "admin-1",
			body: `{"status":"Preparing"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("GetOrder", mock.Anything, 1).Return(orderIn(domain.StatusPlaced), nil).Once()
				repo.On("UpdateStatus", mock.Anything, 1, domain.StatusPlaced, domain.StatusPreparing).Return(true, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "illegal_jump",
			uid:  "admin-1",
			body: `{"status":"Completed"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("GetOrder", mock.Anything, 1).Return(orderIn(domain.StatusPlaced), nil).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "unknown_status",
			uid:          "admin-1",
			body:         `{"status":"Shipped"}`,
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "student_forbidden",
			uid:          "stud-1",
			body:         `{"status":"Preparing"}`,
			prepareMocks: func(*mocks.OrderRepository) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "missing_order",
			uid:  "admin-1",
			body: `{"status":"Preparing"}`,
			prepareMocks: func(repo *mocks.OrderRepository) {
				repo.On("GetOrder", mock.Anything, 1).Return(nil, apperr.NotFound("order 1")).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			testCase.prepareMocks(repo)

			req := httptest.NewRequest("PATCH", "/api/orders/1/status", bytes.NewBufferString(testCase.body))
			authtest.Authorize(req, testCase.uid)
			w := httptest.NewRecorder()
			newTestRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, testCase.expectedCode, w.Code)
		})
	}
}

func TestCancelOrderHandler(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("GetOrder", mock.Anything, 1).Return(orderIn(domain.StatusPreparing), nil).Once()

	req := authtest.Authorize(httptest.NewRequest("POST", "/api/orders/1/cancel", nil), "stud-1")
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderQRCodeHandler(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	repo.On("GetOrder", mock.Anything, 1).Return(orderIn(domain.StatusPlaced), nil).Once()
	repo.On("GetQRCode", mock.Anything, 1).Return([]byte("\x89PNG"), nil).Once()

	req := authtest.Authorize(httptest.NewRequest("GET", "/api/orders/1/qrcode", nil), "stud-1")
	w := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	newTestRouter(mocks.NewOrderRepository(t)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "order-svc")
}
