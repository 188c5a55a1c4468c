// handler/customer_handler_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-banking-core/model"
	"go-banking-core/service"
)

// MockCustomerService is a mock for the customer service consumed by the
// handler.
type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req model.CustomerCreationRequest) (*model.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int) (*model.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) GetAllCustomers(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func TestCreateCustomerHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := NewCustomerHandler(svc)
		svc.On("CreateCustomer", mock.Anything, mock.AnythingOfType("model.CustomerCreationRequest")).
			Return(&model.Customer{ID: 1, Name: "Ana", Tier: model.TierBronze}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers",
			bytes.NewBufferString(`{"name": "Ana", "email": "ana@example.com"}`))
		rr := httptest.NewRecorder()
		ErrorHandlingMiddleware(h.CreateCustomer).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got model.Customer
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, model.TierBronze, got.Tier)
	})

	t.Run("missing name", func(t *testing.T) {
		h := NewCustomerHandler(new(MockCustomerService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString(`{}`))
		rr := httptest.NewRecorder()
		ErrorHandlingMiddleware(h.CreateCustomer).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate name maps to 409", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := NewCustomerHandler(svc)
		svc.On("CreateCustomer", mock.Anything, mock.Anything).
			Return(nil, service.ErrCustomerAlreadyExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers",
			bytes.NewBufferString(`{"name": "Ana"}`))
		rr := httptest.NewRecorder()
		ErrorHandlingMiddleware(h.CreateCustomer).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetCustomerHandler(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := NewCustomerHandler(svc)
		svc.On("GetCustomer", mock.Anything, 9).
			Return(nil, service.ErrCustomerNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/9", nil)
		req.SetPathValue("id", "9")
		rr := httptest.NewRecorder()
		ErrorHandlingMiddleware(h.GetCustomer).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListCustomersHandler(t *testing.T) {
	svc := new(MockCustomerService)
	h := NewCustomerHandler(svc)
	svc.On("GetAllCustomers", mock.Anything).
		Return([]*model.Customer{{ID: 1, Name: "Ana"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.ListCustomers).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
