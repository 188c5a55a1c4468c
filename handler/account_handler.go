package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go-banking-core/common"
	"go-banking-core/model"
)

type accountManager interface {
	CreateAccount(ctx context.Context, req model.AccountCreationRequest) (*model.Account, error)
	GetAccount(ctx context.Context, accountID int) (*model.Account, error)
	ListAccountsForCustomer(ctx context.Context, customerID int) ([]*model.Account, error)
	ApplyInterest(ctx context.Context, accountID int) (*model.Account, error)
	ProcessOverdraft(ctx context.Context, accountID int) error
}

type AccountHandler struct {
	service accountManager
}

func NewAccountHandler(s accountManager) *AccountHandler {
	return &AccountHandler{service: s}
}

// CreateAccount godoc
// @Summary      Open a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        account body model.AccountCreationRequest true "Account details"
// @Success      201  {object}  model.Account
// @Failure      400  {object}  common.AppError "Unknown account type"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/v1/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.AccountCreationRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	account, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		return mapServiceError(err, "Could not create account")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
	return nil
}

// GetAccount godoc
// @Summary      Get account by ID
// @Tags         accounts
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      200  {object}  model.Account
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/v1/accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		return mapServiceError(err, "Could not retrieve account")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// ListAccountsByCustomer godoc
// @Summary      List accounts for a customer
// @Tags         accounts
// @Produce      json
// @Param        customerId query int true "Customer ID"
// @Success      200  {array}   model.Account
// @Router       /api/v1/accounts [get]
func (h *AccountHandler) ListAccountsByCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, err := strconv.Atoi(r.URL.Query().Get("customerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid or missing customerId query parameter", err)
	}

	accounts, err := h.service.ListAccountsForCustomer(r.Context(), customerID)
	if err != nil {
		return mapServiceError(err, "Could not list accounts")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(accounts)
	return nil
}

// ApplyInterest godoc
// @Summary      Apply interest to a savings account
// @Description  Accrues one interest period. Intended to be invoked by an external scheduler.
// @Tags         accounts
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Account type does not accrue interest"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/v1/accounts/{id}/interest [post]
func (h *AccountHandler) ApplyInterest(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	account, err := h.service.ApplyInterest(r.Context(), accountID)
	if err != nil {
		return mapServiceError(err, "Could not apply interest")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// ProcessOverdraft godoc
// @Summary      Process an overdraft on an account
// @Description  Fails with a distinct error for account types that do not offer overdrafts.
// @Tags         accounts
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      204  "Overdraft accepted"
// @Failure      400  {object}  common.AppError "Overdraft not supported for this account type"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/v1/accounts/{id}/overdraft [post]
func (h *AccountHandler) ProcessOverdraft(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	if err := h.service.ProcessOverdraft(r.Context(), accountID); err != nil {
		return mapServiceError(err, "Could not process overdraft")
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
