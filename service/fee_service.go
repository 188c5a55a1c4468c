package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"go-banking-core/logger"
	"go-banking-core/model"
	"go-banking-core/policy"
	"go-banking-core/repository"
)

// FeeService assesses the monthly account-maintenance fee: at most one FEE
// charge per account per calendar month, computed from the customer tier and
// the account snapshot.
type FeeService struct {
	db              *sql.DB
	accountRepo     repository.IAccountRepository
	customerRepo    repository.ICustomerRepository
	transactionRepo repository.ITransactionRepository
}

func NewFeeService(
	db *sql.DB,
	accountRepo repository.IAccountRepository,
	customerRepo repository.ICustomerRepository,
	transactionRepo repository.ITransactionRepository,
) *FeeService {
	return &FeeService{
		db:              db,
		accountRepo:     accountRepo,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

// AssessMonthlyFee charges or waives this month's maintenance fee for the
// account. The account row stays locked from the already-charged check
// through the debit, so two concurrent assessments cannot both charge.
//
// Fee debits deliberately skip the account policy ceiling: a fee may take a
// capped account's balance down, never up.
func (s *FeeService) AssessMonthlyFee(ctx context.Context, accountID int) (*model.FeeAssessment, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Assessing monthly fee")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	acc, err := s.accountRepo.GetAccountForUpdate(tx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &AccountNotFoundError{AccountID: accountID}
		}
		return nil, fmt.Errorf("could not read account %d: %w", accountID, err)
	}

	monthStart, monthEnd := currentMonthRange(time.Now())
	fees, err := s.transactionRepo.GetFeeTransactionsInRange(tx, accountID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("could not check prior fee charges: %w", err)
	}
	if len(fees) > 0 {
		log.Info("Monthly fee already charged this month")
		return nil, ErrFeeAlreadyCharged
	}

	cust, err := s.customerRepo.GetCustomerByID(acc.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("could not read customer %d: %w", acc.CustomerID, err)
	}

	feeResult := policy.CalculateFee(acc, cust.Tier)
	if feeResult.Waived {
		log.WithField("reason", feeResult.Description).Info("Monthly fee waived")
		return &model.FeeAssessment{
			Charged:     false,
			Description: feeResult.Description,
		}, nil
	}

	newBalance := acc.Balance.Sub(feeResult.Amount)
	if err := s.accountRepo.UpdateAccountBalance(tx, accountID, newBalance); err != nil {
		return nil, fmt.Errorf("could not debit fee: %w", err)
	}

	record := &model.Transaction{
		FromAccountID: &accountID,
		Amount:        feeResult.Amount,
		Type:          model.TransactionFee,
		Description:   feeResult.Description,
	}
	if err := s.transactionRepo.CreateTransaction(tx, record); err != nil {
		return nil, fmt.Errorf("could not append fee record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithFields(logrus.Fields{
		"amount": feeResult.Amount.String(),
		"reason": feeResult.Description,
	}).Info("Monthly fee charged")

	return &model.FeeAssessment{
		Charged:     true,
		Amount:      feeResult.Amount,
		Description: feeResult.Description,
	}, nil
}

// currentMonthRange returns the first and last instants of now's calendar
// month.
func currentMonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
