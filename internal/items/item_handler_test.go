package items

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/config"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByLocation(location string) ([]models.Item, error) {
	args := m.Called(location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetItem(itemID int) (*models.Item, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Search(searchText string, location string) ([]models.Item, error) {
	args := m.Called(searchText, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByLDAP(ldap string) (*models.User, error) {
	args := m.Called(ldap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Inventory.Locations = []string{"warehouse-a", "warehouse-b"}
	return cfg
}

func setupRouter(itemRepo *MockItemRepository, userRepo *MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewItemHandler(itemRepo, userRepo, testConfig())
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestGetInventory(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(itemRepo *MockItemRepository, userRepo *MockUserRepository)
		expectedStatus int
		check          func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "lists items at a known location",
			url:  "/api/inventory?location=warehouse-a",
			setupMock: func(itemRepo *MockItemRepository, userRepo *MockUserRepository) {
				itemRepo.On("GetByLocation", "warehouse-a").Return([]models.Item{
					{ID: 1, Name: "Laptop", Location: "warehouse-a", QuantityTotal: 10, QuantityAvailable: 6},
					{ID: 2, Name: "Projector", Location: "warehouse-a", QuantityTotal: 5, QuantityAvailable: 0},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, float64(2), response["total_items"])
				items := response["items"].([]interface{})
				first := items[0].(map[string]interface{})
				second := items[1].(map[string]interface{})
				assert.Equal(t, models.AvailabilityAvailable, first["availability_status"])
				assert.Equal(t, models.AvailabilityOutOfStock, second["availability_status"])
			},
		},
		{
			name:           "missing location",
			url:            "/api/inventory",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown location lists the valid ones",
			url:            "/api/inventory?location=basement",
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, response map[string]interface{}) {
				assert.Contains(t, response, "valid_locations")
			},
		},
		{
			name: "resolves the acting user",
			url:  "/api/inventory?location=warehouse-a&ldap=jdoe",
			setupMock: func(itemRepo *MockItemRepository, userRepo *MockUserRepository) {
				userRepo.On("GetByLDAP", "jdoe").Return(&models.User{ID: 7, LDAP: "jdoe", FullName: "Jane Doe"}, nil)
				itemRepo.On("GetByLocation", "warehouse-a").Return([]models.Item{}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, response map[string]interface{}) {
				user := response["user"].(map[string]interface{})
				assert.Equal(t, "Jane Doe", user["full_name"])
			},
		},
		{
			name: "unknown ldap is unauthorized",
			url:  "/api/inventory?location=warehouse-a&ldap=ghost",
			setupMock: func(itemRepo *MockItemRepository, userRepo *MockUserRepository) {
				userRepo.On("GetByLDAP", "ghost").Return(nil, custom_error.NewNotFoundError("user", "ghost"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemRepo := new(MockItemRepository)
			userRepo := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(itemRepo, userRepo)
			}
			router := setupRouter(itemRepo, userRepo)

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				tt.check(t, response)
			}
			itemRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestSearchInventory(t *testing.T) {
	t.Run("matches on name or category", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("Search", "lap", "").Return([]models.Item{
			{ID: 1, Name: "Laptop", QuantityTotal: 10, QuantityAvailable: 1},
		}, nil)
		router := setupRouter(itemRepo, new(MockUserRepository))

		req := httptest.NewRequest("GET", "/api/inventory/search?q=lap", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(1), response["total_results"])
		items := response["items"].([]interface{})
		first := items[0].(map[string]interface{})
		assert.Equal(t, models.AvailabilityLowStock, first["availability_status"])
		itemRepo.AssertExpectations(t)
	})

	t.Run("missing query parameter", func(t *testing.T) {
		router := setupRouter(new(MockItemRepository), new(MockUserRepository))

		req := httptest.NewRequest("GET", "/api/inventory/search", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetItem(t *testing.T) {
	t.Run("existing item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("GetItem", 1).Return(&models.Item{ID: 1, Name: "Laptop", QuantityTotal: 10, QuantityAvailable: 6}, nil)
		router := setupRouter(itemRepo, new(MockUserRepository))

		req := httptest.NewRequest("GET", "/api/inventory/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		item := response["item"].(map[string]interface{})
		assert.Equal(t, "Laptop", item["item_name"])
		assert.Equal(t, models.AvailabilityAvailable, item["availability_status"])
	})

	t.Run("unknown item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		itemRepo.On("GetItem", 99).Return(nil, custom_error.NewNotFoundError("item", "99"))
		router := setupRouter(itemRepo, new(MockUserRepository))

		req := httptest.NewRequest("GET", "/api/inventory/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
