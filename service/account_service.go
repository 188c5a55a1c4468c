package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-banking-core/logger"
	"go-banking-core/model"
	"go-banking-core/policy"
	"go-banking-core/repository"
)

const accountCacheTTL = 10 * time.Minute

// AccountService handles account lifecycle and the explicitly scheduled
// account-type operations (interest accrual, overdraft).
type AccountService struct {
	db           *sql.DB
	accountRepo  repository.IAccountRepository
	customerRepo repository.ICustomerRepository
	cache        ICacheClient
}

func NewAccountService(db *sql.DB, accountRepo repository.IAccountRepository, customerRepo repository.ICustomerRepository, cache ICacheClient) *AccountService {
	return &AccountService{
		db:           db,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		cache:        cache,
	}
}

// CreateAccount opens a new account with a zero balance. The account type
// selects the policy that will govern it.
func (s *AccountService) CreateAccount(ctx context.Context, req model.AccountCreationRequest) (*model.Account, error) {
	accountType := model.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType)))
	switch accountType {
	case model.AccountTypeChecking, model.AccountTypeSavings, model.AccountTypeStudent:
	default:
		return nil, ErrUnknownAccountType
	}

	if _, err := s.customerRepo.GetCustomerByID(req.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	account := &model.Account{
		CustomerID:  req.CustomerID,
		AccountType: accountType,
		Balance:     decimal.Zero,
		Currency:    req.Currency,
	}
	if err := s.accountRepo.CreateAccount(account); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, req.CustomerID)
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int) (*model.Account, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &AccountNotFoundError{AccountID: accountID}
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsForCustomer lists a customer's accounts using a cache-aside
// strategy; mutations elsewhere invalidate the key.
func (s *AccountService) ListAccountsForCustomer(ctx context.Context, customerID int) ([]*model.Account, error) {
	cacheKey := fmt.Sprintf("accounts:%d", customerID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var accounts []*model.Account
			if err := json.Unmarshal([]byte(cached), &accounts); err == nil {
				return accounts, nil
			}
		}
	}

	accounts, err := s.accountRepo.GetAccountsByCustomerID(customerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(accounts); err == nil {
			s.cache.Set(ctx, cacheKey, data, accountCacheTTL)
		}
	}

	return accounts, nil
}

// ApplyInterest accrues one interest period onto a savings account. Invoked
// by an external scheduler, never by the transaction path.
func (s *AccountService) ApplyInterest(ctx context.Context, accountID int) (*model.Account, error) {
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

	newBalance, err := policy.ForAccountType(acc.AccountType).ApplyInterest(acc.Balance)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateAccountBalance(tx, accountID, newBalance); err != nil {
		return nil, fmt.Errorf("could not update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	logger.Log.WithField("account_id", accountID).Info("Interest applied")

	acc.Balance = newBalance
	s.invalidateCache(ctx, acc.CustomerID)
	return acc, nil
}

// ProcessOverdraft reports whether the account's type offers overdrafts.
// For types that do not, the error is always ErrOverdraftNotSupported,
// distinct from any insufficient-funds condition.
func (s *AccountService) ProcessOverdraft(ctx context.Context, accountID int) error {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	return policy.ForAccountType(acc.AccountType).ProcessOverdraft(acc)
}

func (s *AccountService) invalidateCache(ctx context.Context, customerID int) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, fmt.Sprintf("accounts:%d", customerID))
}
