package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"go-banking-core/logger"
	"go-banking-core/model"
	"go-banking-core/policy"
	"go-banking-core/repository"
)

const notificationTimeout = 5 * time.Second

// TransactionService validates and executes money movements. Every call runs
// as one database transaction: all balance writes and ledger appends commit
// together or not at all.
type TransactionService struct {
	db               *sql.DB
	accountRepo      repository.IAccountRepository
	transactionRepo  repository.ITransactionRepository
	notifier         INotificationService
	cache            ICacheClient
	largeTxThreshold decimal.Decimal
	internationalFee decimal.Decimal
}

func NewTransactionService(
	db *sql.DB,
	accountRepo repository.IAccountRepository,
	transactionRepo repository.ITransactionRepository,
	notifier INotificationService,
	cache ICacheClient,
	largeTxThreshold decimal.Decimal,
	internationalFee decimal.Decimal,
) *TransactionService {
	return &TransactionService{
		db:               db,
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		notifier:         notifier,
		cache:            cache,
		largeTxThreshold: largeTxThreshold,
		internationalFee: internationalFee,
	}
}

// ProcessTransaction executes a deposit, withdrawal, transfer or
// international transfer. A nil error means the operation committed; a
// non-nil error means it was rejected (or an infrastructure failure
// occurred) and no state changed.
func (s *TransactionService) ProcessTransaction(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from":   req.FromAccountID,
		"to":     req.ToAccountID,
		"amount": req.Amount.String(),
		"type":   req.Type,
	})
	log.Info("Processing transaction")

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	kind := model.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type)))
	switch kind {
	case model.TransactionDeposit, model.TransactionWithdrawal,
		model.TransactionTransfer, model.TransactionInternational:
	default:
		return nil, ErrUnknownTransactionType
	}

	if err := checkRequiredReferences(kind, req); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	accounts, err := s.lockAccounts(tx, referencedIDs(kind, req))
	if err != nil {
		return nil, err
	}

	// Large movements trigger a customer notice once the request has passed
	// validation, whether or not the movement itself goes through.
	if req.Amount.GreaterThan(s.largeTxThreshold) {
		if req.FromAccountID != nil {
			src := accounts[*req.FromAccountID]
			s.notifyAsync(src.CustomerID, fmt.Sprintf("A large transaction of %s was initiated.", req.Amount.String()))
		}
	}

	var record *model.Transaction
	switch kind {
	case model.TransactionDeposit:
		record, err = s.executeDeposit(tx, accounts[*req.ToAccountID], req)
	case model.TransactionWithdrawal:
		record, err = s.executeWithdrawal(tx, accounts[*req.FromAccountID], req)
	case model.TransactionTransfer:
		record, err = s.executeTransfer(tx, accounts[*req.FromAccountID], accounts[*req.ToAccountID], req)
	case model.TransactionInternational:
		record, err = s.executeInternationalTransfer(tx, accounts[*req.FromAccountID], accounts[*req.ToAccountID], req)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.invalidateAccountCaches(ctx, accounts)

	if kind == model.TransactionInternational {
		src := accounts[*req.FromAccountID]
		s.notifyAsync(src.CustomerID, "International transfer processed.")
	}

	log.Info("Transaction committed successfully")
	return record, nil
}

// ListTransactionsForAccount retrieves an account's ledger history, newest
// first.
func (s *TransactionService) ListTransactionsForAccount(ctx context.Context, accountID int) ([]*model.Transaction, error) {
	if _, err := s.accountRepo.GetAccountByID(accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &AccountNotFoundError{AccountID: accountID}
		}
		return nil, err
	}
	return s.transactionRepo.GetTransactionsByAccountID(accountID)
}

func checkRequiredReferences(kind model.TransactionType, req model.TransactionRequest) error {
	switch kind {
	case model.TransactionTransfer, model.TransactionInternational:
		if req.FromAccountID == nil || req.ToAccountID == nil {
			return ErrMissingAccountReference
		}
	case model.TransactionDeposit:
		if req.ToAccountID == nil {
			return ErrMissingAccountReference
		}
	case model.TransactionWithdrawal:
		if req.FromAccountID == nil {
			return ErrMissingAccountReference
		}
	}
	return nil
}

func referencedIDs(kind model.TransactionType, req model.TransactionRequest) []int {
	var ids []int
	switch kind {
	case model.TransactionDeposit:
		ids = []int{*req.ToAccountID}
	case model.TransactionWithdrawal:
		ids = []int{*req.FromAccountID}
	default:
		ids = []int{*req.FromAccountID, *req.ToAccountID}
	}
	return ids
}

// lockAccounts resolves and row-locks every referenced account. Locks are
// taken in ascending id order so two operations spanning the same pair of
// accounts cannot deadlock. Duplicate ids resolve to a single shared
// instance, so a self-transfer mutates one balance, not two copies of it.
func (s *TransactionService) lockAccounts(tx *sql.Tx, ids []int) (map[int]*model.Account, error) {
	sorted := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Ints(sorted)

	accounts := make(map[int]*model.Account, len(sorted))
	for _, id := range sorted {
		acc, err := s.accountRepo.GetAccountForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &AccountNotFoundError{AccountID: id}
			}
			return nil, fmt.Errorf("could not read account %d: %w", id, err)
		}
		accounts[id] = acc
	}
	return accounts, nil
}

func (s *TransactionService) executeDeposit(tx *sql.Tx, acc *model.Account, req model.TransactionRequest) (*model.Transaction, error) {
	if err := policy.ForAccountType(acc.AccountType).CheckBalanceIncrease(acc, req.Amount); err != nil {
		return nil, err
	}

	acc.Balance = acc.Balance.Add(req.Amount)
	if err := s.accountRepo.UpdateAccountBalance(tx, acc.ID, acc.Balance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", err)
	}

	record := &model.Transaction{
		ToAccountID: &acc.ID,
		Amount:      req.Amount,
		Type:        model.TransactionDeposit,
		Description: req.Description,
	}
	if err := s.transactionRepo.CreateTransaction(tx, record); err != nil {
		return nil, fmt.Errorf("could not append deposit record: %w", err)
	}
	return record, nil
}

func (s *TransactionService) executeWithdrawal(tx *sql.Tx, acc *model.Account, req model.TransactionRequest) (*model.Transaction, error) {
	if acc.Balance.LessThan(req.Amount) {
		return nil, &InsufficientFundsError{
			AccountID: acc.ID,
			Required:  req.Amount,
			Available: acc.Balance,
			Fee:       decimal.Zero,
		}
	}

	acc.Balance = acc.Balance.Sub(req.Amount)
	if err := s.accountRepo.UpdateAccountBalance(tx, acc.ID, acc.Balance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", err)
	}

	record := &model.Transaction{
		FromAccountID: &acc.ID,
		Amount:        req.Amount,
		Type:          model.TransactionWithdrawal,
		Description:   req.Description,
	}
	if err := s.transactionRepo.CreateTransaction(tx, record); err != nil {
		return nil, fmt.Errorf("could not append withdrawal record: %w", err)
	}
	return record, nil
}

func (s *TransactionService) executeTransfer(tx *sql.Tx, from, to *model.Account, req model.TransactionRequest) (*model.Transaction, error) {
	if from.Balance.LessThan(req.Amount) {
		return nil, &InsufficientFundsError{
			AccountID: from.ID,
			Required:  req.Amount,
			Available: from.Balance,
			Fee:       decimal.Zero,
		}
	}
	if err := policy.ForAccountType(to.AccountType).CheckBalanceIncrease(to, req.Amount); err != nil {
		return nil, err
	}

	from.Balance = from.Balance.Sub(req.Amount)
	to.Balance = to.Balance.Add(req.Amount)

	if err := s.accountRepo.UpdateAccountBalance(tx, from.ID, from.Balance); err != nil {
		return nil, fmt.Errorf("could not update sender balance: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalance(tx, to.ID, to.Balance); err != nil {
		return nil, fmt.Errorf("could not update receiver balance: %w", err)
	}

	record := &model.Transaction{
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		Amount:        req.Amount,
		Type:          model.TransactionTransfer,
		Description:   req.Description,
	}
	if err := s.transactionRepo.CreateTransaction(tx, record); err != nil {
		return nil, fmt.Errorf("could not append transfer record: %w", err)
	}
	return record, nil
}

// executeInternationalTransfer debits amount plus the flat surcharge from the
// source and credits only amount to the destination; the surcharge is
// collected by the bank. The principal and fee records share a transfer
// group id.
func (s *TransactionService) executeInternationalTransfer(tx *sql.Tx, from, to *model.Account, req model.TransactionRequest) (*model.Transaction, error) {
	required := req.Amount.Add(s.internationalFee)
	if from.Balance.LessThan(required) {
		return nil, &InsufficientFundsError{
			AccountID: from.ID,
			Required:  required,
			Available: from.Balance,
			Fee:       s.internationalFee,
		}
	}
	if err := policy.ForAccountType(to.AccountType).CheckBalanceIncrease(to, req.Amount); err != nil {
		return nil, err
	}

	from.Balance = from.Balance.Sub(required)
	to.Balance = to.Balance.Add(req.Amount)

	if err := s.accountRepo.UpdateAccountBalance(tx, from.ID, from.Balance); err != nil {
		return nil, fmt.Errorf("could not update sender balance: %w", err)
	}
	if err := s.accountRepo.UpdateAccountBalance(tx, to.ID, to.Balance); err != nil {
		return nil, fmt.Errorf("could not update receiver balance: %w", err)
	}

	groupID := uuid.NewString()

	record := &model.Transaction{
		FromAccountID:   &from.ID,
		ToAccountID:     &to.ID,
		Amount:          req.Amount,
		Type:            model.TransactionTransfer,
		TransferGroupID: &groupID,
		Description:     req.Description,
	}
	if err := s.transactionRepo.CreateTransaction(tx, record); err != nil {
		return nil, fmt.Errorf("could not append transfer record: %w", err)
	}

	feeRecord := &model.Transaction{
		FromAccountID:   &from.ID,
		Amount:          s.internationalFee,
		Type:            model.TransactionFee,
		TransferGroupID: &groupID,
		Description:     "International transfer fee",
	}
	if err := s.transactionRepo.CreateTransaction(tx, feeRecord); err != nil {
		return nil, fmt.Errorf("could not append fee record: %w", err)
	}

	return record, nil
}

// notifyAsync dispatches a notification without blocking the transaction
// outcome. Failures are logged and dropped; the engine never retries.
func (s *TransactionService) notifyAsync(customerID int, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()
		if err := s.notifier.SendNotification(ctx, customerID, message); err != nil {
			logger.Log.WithError(err).WithField("customer_id", customerID).
				Warn("Notification delivery failed; ignoring")
		}
	}()
}

func (s *TransactionService) invalidateAccountCaches(ctx context.Context, accounts map[int]*model.Account) {
	if s.cache == nil {
		return
	}
	for _, acc := range accounts {
		s.cache.Del(ctx, fmt.Sprintf("accounts:%d", acc.CustomerID))
	}
}
