package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-canteen/apperr"
	"campus-canteen/auth/authtest"
	httpapi "campus-canteen/rate-svc/internal/api/http"
	"campus-canteen/rate-svc/internal/domain"
	"campus-canteen/rate-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(svc *mocks.RatingServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(svc, authtest.NewMiddleware(authtest.Campus()))
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHandler_submitRating(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		payload      string
		prepareMocks func(svc *mocks.RatingServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			uid:     "stud-1",
			payload: `{"rating":5}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
					return r.MenuItemID == 1 && r.UserID == "stud-1" && r.Rating == 5
				})).Return(nil).Once()
				svc.On("RecomputeAverage", mock.Anything, 1).
					Return(&domain.ItemStats{MenuItemID: 1, AvgRating: 4.5, RatingCount: 2}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"avg_rating":4.5`,
		},
		{
			name:         "anonymous",
			payload:      `{"rating":5}`,
			prepareMocks: func(*mocks.RatingServiceInterface) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid_json",
			uid:          "stud-1",
			payload:      `{"rating":`,
			prepareMocks: func(*mocks.RatingServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "out_of_range",
			uid:     "stud-1",
			payload: `{"rating":9}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).
					Return(apperr.Invalid("rating", "must be at most 5")).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "unknown_item",
			uid:     "stud-2",
			payload: `{"rating":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(apperr.NotFound("menu item 1")).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "recompute_unavailable",
			uid:     "stud-2",
			payload: `{"rating":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil).Once()
				svc.On("RecomputeAverage", mock.Anything, 1).Return(nil, apperr.ErrBackendUnavailable).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := mocks.NewRatingServiceInterface(t)
			router := setupTestRouter(svc)
			testCase.prepareMocks(svc)

			req := authtest.Authorize(httptest.NewRequest("POST", "/api/menu-items/1/ratings", bytes.NewBufferString(testCase.payload)), testCase.uid)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getRatings(t *testing.T) {
	svc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(svc)

	svc.On("List", mock.Anything, 1).Return([]domain.Rating{
		{MenuItemID: 1, UserID: "stud-1", Rating: 5},
		{MenuItemID: 1, UserID: "stud-2", Rating: 4},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/menu-items/1/ratings", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var ratings []domain.Rating
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&ratings))
	assert.Len(t, ratings, 2)
}

func TestHandler_recompute(t *testing.T) {
	tests := []struct {
		name         string
		uid          string
		prepareMocks func(svc *mocks.RatingServiceInterface)
		expectedCode int
	}{
		{
			name: "admin",
			uid:  "admin-1",
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("RecomputeAverage", mock.Anything, 1).Return(&domain.ItemStats{MenuItemID: 1}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "student",
			uid:          "stud-1",
			prepareMocks: func(*mocks.RatingServiceInterface) {},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := mocks.NewRatingServiceInterface(t)
			router := setupTestRouter(svc)
			testCase.prepareMocks(svc)

			req := authtest.Authorize(httptest.NewRequest("POST", "/api/menu-items/1/ratings/recompute", nil), testCase.uid)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}
