package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go-banking-core/common"
	"go-banking-core/model"
)

// transactionProcessor is the slice of the transaction service the handler
// consumes.
type transactionProcessor interface {
	ProcessTransaction(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error)
	ListTransactionsForAccount(ctx context.Context, accountID int) ([]*model.Transaction, error)
}

type TransactionHandler struct {
	service transactionProcessor
}

func NewTransactionHandler(s transactionProcessor) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// ProcessTransaction godoc
// @Summary      Process a transaction
// @Description  Validates and executes a deposit, withdrawal, transfer or international transfer.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction body model.TransactionRequest true "The requested money movement"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Validation failure or insufficient funds"
// @Failure      404  {object}  common.AppError "Referenced account not found"
// @Failure      422  {object}  common.AppError "Balance ceiling would be exceeded"
// @Failure      500  {object}  common.AppError "Infrastructure failure"
// @Router       /api/v1/accounts/process [post]
func (h *TransactionHandler) ProcessTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransactionRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	transaction, err := h.service.ProcessTransaction(r.Context(), req)
	if err != nil {
		return mapServiceError(err, "Could not process transaction")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// ListTransactionsForAccount godoc
// @Summary      List account transaction history
// @Description  Retrieves the ledger entries referencing the account, newest first.
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      200  {array}   model.Transaction
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Infrastructure failure"
// @Router       /api/v1/accounts/{id}/transactions [get]
func (h *TransactionHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	transactions, err := h.service.ListTransactionsForAccount(r.Context(), accountID)
	if err != nil {
		return mapServiceError(err, "Could not retrieve transactions")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transactions)
	return nil
}
