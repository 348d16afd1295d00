package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-ms/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	testProducts := []model.Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 50},
		{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("19.50"), Stock: 0},
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedLimit  int
		expectedOffset int
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success without paging",
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Success with custom pagination",
			queryParams:    "?limit=5&offset=10",
			expectedLimit:  5,
			expectedOffset: 10,
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid limit parameter",
			queryParams:    "?limit=invalid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid offset parameter",
			queryParams:    "?offset=invalid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetAll", mock.Anything, tt.expectedLimit, tt.expectedOffset).
					Return(tt.mockReturn, tt.mockError)
			}

			req := newRequest(http.MethodGet, "/api/product"+tt.queryParams, nil, "")
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedStatus == http.StatusOK {
				var got []map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				require.Len(t, got, 2)
				assert.EqualValues(t, 1, got[0]["productId"])
				assert.EqualValues(t, 999.99, got[0]["price"])
			} else {
				body := decodeEnvelope(t, w)
				assert.False(t, body.Success)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	testProduct := &model.Product{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 50}

	tests := []struct {
		name           string
		id             string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			id:             "1",
			mockReturn:     testProduct,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Product not found",
			id:             "99",
			mockError:      model.ProductNotFound(99),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Non-numeric id",
			id:             "abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing id",
			id:             "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, mock.AnythingOfType("int64")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := newRequest(http.MethodGet, "/api/product/"+tt.id, nil, tt.id)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "Laptop", got.Name)
				assert.True(t, testProduct.Price.Equal(got.Price))
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	created := &model.Product{ID: 3, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 50}

	tests := []struct {
		name            string
		requestBody     string
		mockReturn      *model.Product
		mockError       error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
		expectService   bool
	}{
		{
			name:            "Success",
			requestBody:     `{"name":"Laptop","price":999.99,"stock":50}`,
			mockReturn:      created,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Product created successfully.",
			expectService:   true,
		},
		{
			name:            "Price as string",
			requestBody:     `{"name":"Laptop","price":"999.99","stock":50}`,
			mockReturn:      created,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Product created successfully.",
			expectService:   true,
		},
		{
			name:            "Missing name",
			requestBody:     `{"price":1,"stock":1}`,
			mockError:       model.ErrNameRequired,
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    model.ErrCodeInvalidName,
			expectedMessage: "Name is required.",
			expectService:   true,
		},
		{
			name:            "Invalid price",
			requestBody:     `{"name":"X","price":0,"stock":1}`,
			mockError:       model.ErrInvalidPrice,
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    model.ErrCodeInvalidPrice,
			expectedMessage: "Price must be greater than 0.",
			expectService:   true,
		},
		{
			name:            "Negative stock",
			requestBody:     `{"name":"X","price":1,"stock":-1}`,
			mockError:       model.ErrNegativeStock,
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    model.ErrCodeInvalidStock,
			expectedMessage: "Stock cannot be negative.",
			expectService:   true,
		},
		{
			name:            "Invalid JSON",
			requestBody:     `{"name":`,
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    model.ErrCodeInvalidJSON,
			expectedMessage: "Invalid request body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.ProductRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := newRequest(http.MethodPost, "/api/product", []byte(tt.requestBody), "")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedMessage, body.Message)
			assert.Equal(t, tt.expectedCode, body.Error)

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Create_DecodesDecimalPrice(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())

	mockService.On("Create", mock.Anything, mock.MatchedBy(func(req *model.ProductRequest) bool {
		return req.Name == "Cable" && req.Stock == 3 && req.Price.Equal(decimal.RequireFromString("0.105"))
	})).Return(&model.Product{ID: 1, Name: "Cable", Price: decimal.RequireFromString("0.105"), Stock: 3}, nil)

	req := newRequest(http.MethodPost, "/api/product", []byte(`{"name":"Cable","price":0.105,"stock":3}`), "")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			id:             "1",
			mockReturn:     &model.Product{ID: 1, Name: "Laptop Pro", Price: decimal.NewFromInt(1299), Stock: 20},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Product not found",
			id:             "9",
			mockError:      model.ProductNotFound(9),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Validation error",
			id:             "1",
			mockError:      model.ErrInvalidPrice,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Non-numeric id",
			id:             "one",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("Update", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("*model.ProductRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := newRequest(http.MethodPut, "/api/product/"+tt.id, []byte(`{"name":"Laptop Pro","price":1299,"stock":20}`), tt.id)
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeEnvelope(t, w)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, body.Success)
				assert.Equal(t, "Product updated successfully.", body.Message)
			} else {
				assert.False(t, body.Success)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			id:             "2",
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Product not found",
			id:             "2",
			mockError:      model.ProductNotFound(2),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Service error",
			id:             "2",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Non-numeric id",
			id:             "two",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("Delete", mock.Anything, int64(2)).Return(tt.mockError)
			}

			req := newRequest(http.MethodDelete, "/api/product/"+tt.id, nil, tt.id)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, body.Success)

			mockService.AssertExpectations(t)
		})
	}
}
