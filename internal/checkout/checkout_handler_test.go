package checkout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory/pkg/auditlog"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Checkout(req CheckoutRequest) (*models.Checkout, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *MockService) Checkin(req CheckinRequest) (*models.CheckoutHistory, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutHistory), args.Error(1)
}

func (m *MockService) ActiveCheckouts(filter ActiveFilter) ([]models.ActiveCheckout, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActiveCheckout), args.Error(1)
}

func (m *MockService) OverdueCheckouts() ([]models.ActiveCheckout, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActiveCheckout), args.Error(1)
}

func (m *MockService) UserHistory(ldap string, limit int) (*models.User, []models.HistoryRecord, error) {
	args := m.Called(ldap, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).([]models.HistoryRecord), args.Error(2)
}

func (m *MockService) ItemHistory(itemID int, limit int) ([]models.HistoryRecord, error) {
	args := m.Called(itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryRecord), args.Error(1)
}

// noopAuditLogger swallows audit calls; handlers fire them in goroutines so a
// testify mock would race with the assertions.
type noopAuditLogger struct{}

func (noopAuditLogger) Log(action string, data interface{}, item auditlog.Auditable) {}

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCheckoutHandler(service, noopAuditLogger{})
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestCheckoutEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		payload        interface{}
		setupMock      func(service *MockService)
		expectedStatus int
	}{
		{
			name:    "successful checkout",
			payload: CheckoutRequest{ItemID: 1, UserLDAP: "jdoe", Quantity: 2},
			setupMock: func(service *MockService) {
				service.On("Checkout", mock.Anything).Return(&models.Checkout{ID: 42, ItemID: 1, UserID: 7, Quantity: 2}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing required fields",
			payload:        map[string]interface{}{"item_id": 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "unknown user",
			payload: CheckoutRequest{ItemID: 1, UserLDAP: "ghost", Quantity: 1},
			setupMock: func(service *MockService) {
				service.On("Checkout", mock.Anything).Return(nil, custom_error.NewNotFoundError("user", "ghost"))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "insufficient quantity",
			payload: CheckoutRequest{ItemID: 1, UserLDAP: "jdoe", Quantity: 100},
			setupMock: func(service *MockService) {
				service.On("Checkout", mock.Anything).Return(nil, custom_error.NewConflictError("not enough units available"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}
			router := setupRouter(service)

			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, true, response["success"])
				assert.Equal(t, "Item checked out successfully", response["message"])
				assert.Contains(t, response, "checkout")
			}
			service.AssertExpectations(t)
		})
	}
}

func TestCheckinEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		payload        interface{}
		setupMock      func(service *MockService)
		expectedStatus int
	}{
		{
			name:    "successful checkin",
			payload: CheckinRequest{CheckoutID: 42, ReturnCondition: "good"},
			setupMock: func(service *MockService) {
				service.On("Checkin", mock.Anything).Return(&models.CheckoutHistory{ID: 9, CheckoutID: 42, IsReturned: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing checkout id",
			payload:        map[string]interface{}{"return_condition": "good"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "already returned",
			payload: CheckinRequest{CheckoutID: 42},
			setupMock: func(service *MockService) {
				service.On("Checkin", mock.Anything).Return(nil, custom_error.NewConflictError("checkout 42 has already been returned"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "unknown checkout",
			payload: CheckinRequest{CheckoutID: 99},
			setupMock: func(service *MockService) {
				service.On("Checkin", mock.Anything).Return(nil, custom_error.NewNotFoundError("checkout", "99"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			if tt.setupMock != nil {
				tt.setupMock(service)
			}
			router := setupRouter(service)

			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest("POST", "/api/checkout/checkin", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestActiveCheckoutsEndpoint(t *testing.T) {
	service := new(MockService)
	service.On("ActiveCheckouts", ActiveFilter{UserID: 7}).Return([]models.ActiveCheckout{
		{CheckoutID: 1, LDAP: "jdoe", IsOverdue: true, DaysOverdue: 3},
	}, nil)
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/api/checkout/active?user_id=7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["total_active_checkouts"])
	service.AssertExpectations(t)
}

func TestActiveCheckoutsEmptyIsAnArray(t *testing.T) {
	service := new(MockService)
	service.On("ActiveCheckouts", ActiveFilter{}).Return([]models.ActiveCheckout(nil), nil)
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/api/checkout/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"checkouts":[]`)
}

func TestOverdueCheckoutsEndpoint(t *testing.T) {
	service := new(MockService)
	service.On("OverdueCheckouts").Return([]models.ActiveCheckout{
		{CheckoutID: 3, DaysOverdue: 10, IsOverdue: true},
		{CheckoutID: 1, DaysOverdue: 2, IsOverdue: true},
	}, nil)
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/api/checkout/overdue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total_overdue"])
	service.AssertExpectations(t)
}

func TestUserHistoryEndpoint(t *testing.T) {
	service := new(MockService)
	service.On("UserHistory", "jdoe", 10).Return(
		&models.User{ID: 7, LDAP: "jdoe", FullName: "Jane Doe"},
		[]models.HistoryRecord{{HistoryID: 1, ReturnDate: time.Now()}},
		nil,
	)
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/api/checkout/user/jdoe?limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "jdoe", user["ldap"])
	assert.Equal(t, "Jane Doe", user["full_name"])
	assert.Equal(t, float64(1), response["total_records"])
	service.AssertExpectations(t)
}

func TestUserHistoryDefaultsLimit(t *testing.T) {
	service := new(MockService)
	service.On("UserHistory", "jdoe", defaultHistoryLimit).Return(
		&models.User{LDAP: "jdoe"}, []models.HistoryRecord{}, nil,
	)
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/api/checkout/user/jdoe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestItemHistoryEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(service *MockService)
		expectedStatus int
	}{
		{
			name: "history for an existing item",
			url:  "/api/checkout/item/1/history",
			setupMock: func(service *MockService) {
				service.On("ItemHistory", 1, defaultHistoryLimit).Return([]models.HistoryRecord{{HistoryID: 1}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown item",
			url:  "/api/checkout/item/99/history",
			setupMock: func(service *MockService) {
				service.On("ItemHistory", 99, defaultHistoryLimit).Return(nil, custom_error.NewNotFoundError("item", "99"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			router := setupRouter(service)

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
		})
	}
}
