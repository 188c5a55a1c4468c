package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go-banking-core/common"
	"go-banking-core/model"
)

type customerManager interface {
	CreateCustomer(ctx context.Context, req model.CustomerCreationRequest) (*model.Customer, error)
	GetCustomer(ctx context.Context, customerID int) (*model.Customer, error)
	GetAllCustomers(ctx context.Context) ([]*model.Customer, error)
}

type CustomerHandler struct {
	service customerManager
}

func NewCustomerHandler(s customerManager) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// CreateCustomer godoc
// @Summary      Register a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customer body model.CustomerCreationRequest true "Customer details"
// @Success      201  {object}  model.Customer
// @Failure      409  {object}  common.AppError "Customer name already taken"
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CustomerCreationRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	customer, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		return mapServiceError(err, "Could not create customer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
	return nil
}

// GetCustomer godoc
// @Summary      Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200  {object}  model.Customer
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	customer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		return mapServiceError(err, "Could not retrieve customer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

// ListCustomers godoc
// @Summary      List all customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}   model.Customer
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) *common.AppError {
	customers, err := h.service.GetAllCustomers(r.Context())
	if err != nil {
		return mapServiceError(err, "Could not list customers")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customers)
	return nil
}
