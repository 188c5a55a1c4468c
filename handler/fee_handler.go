package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go-banking-core/common"
	"go-banking-core/model"
)

type feeAssessor interface {
	AssessMonthlyFee(ctx context.Context, accountID int) (*model.FeeAssessment, error)
}

type FeeHandler struct {
	service feeAssessor
}

func NewFeeHandler(s feeAssessor) *FeeHandler {
	return &FeeHandler{service: s}
}

// AssessMonthlyFee godoc
// @Summary      Assess the monthly maintenance fee
// @Description  Charges or waives this month's maintenance fee for the account. At most one charge per calendar month.
// @Tags         fees
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      200  {object}  model.FeeAssessment
// @Failure      404  {object}  common.AppError "Account or customer not found"
// @Failure      409  {object}  common.AppError "Fee already charged this month"
// @Failure      500  {object}  common.AppError "Infrastructure failure"
// @Router       /api/v1/accounts/{id}/fees [post]
func (h *FeeHandler) AssessMonthlyFee(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	assessment, err := h.service.AssessMonthlyFee(r.Context(), accountID)
	if err != nil {
		return mapServiceError(err, "Could not assess monthly fee")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(assessment)
	return nil
}
