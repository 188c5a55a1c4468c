// service/account_service_test.go
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-banking-core/model"
	"go-banking-core/policy"
)

// MockCacheClient is a mock for ICacheClient.
type MockCacheClient struct{ mock.Mock }

func (m *MockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		customerRepo := new(MockCustomerRepository)
		svc := NewAccountService(nil, accountRepo, customerRepo, nil)

		customerRepo.On("GetCustomerByID", 10).Return(&model.Customer{ID: 10}, nil).Once()
		accountRepo.On("CreateAccount", mock.AnythingOfType("*model.Account")).Return(nil).Once()

		account, err := svc.CreateAccount(ctx, model.AccountCreationRequest{
			CustomerID:  10,
			AccountType: "savings",
			Currency:    "USD",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.AccountTypeSavings, account.AccountType)
		assert.True(t, account.Balance.IsZero())
		accountRepo.AssertExpectations(t)
	})

	t.Run("unknown account type", func(t *testing.T) {
		svc := NewAccountService(nil, new(MockAccountRepository), new(MockCustomerRepository), nil)

		_, err := svc.CreateAccount(ctx, model.AccountCreationRequest{
			CustomerID:  10,
			AccountType: "PREMIUM",
		})

		assert.ErrorIs(t, err, ErrUnknownAccountType)
	})

	t.Run("customer not found", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		customerRepo := new(MockCustomerRepository)
		svc := NewAccountService(nil, accountRepo, customerRepo, nil)

		customerRepo.On("GetCustomerByID", 99).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.CreateAccount(ctx, model.AccountCreationRequest{
			CustomerID:  99,
			AccountType: "CHECKING",
		})

		assert.ErrorIs(t, err, ErrCustomerNotFound)
		accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything)
	})
}

func TestListAccountsForCustomer(t *testing.T) {
	ctx := context.Background()
	accounts := []*model.Account{
		{ID: 1, CustomerID: 10, AccountType: model.AccountTypeChecking, Balance: decimal.NewFromInt(100)},
	}

	t.Run("cache miss falls through and populates the cache", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		cache := new(MockCacheClient)
		svc := NewAccountService(nil, accountRepo, new(MockCustomerRepository), cache)

		cache.On("Get", mock.Anything, "accounts:10").
			Return(redis.NewStringResult("", redis.Nil)).Once()
		accountRepo.On("GetAccountsByCustomerID", 10).Return(accounts, nil).Once()
		cache.On("Set", mock.Anything, "accounts:10", mock.Anything, accountCacheTTL).
			Return(redis.NewStatusResult("OK", nil)).Once()

		got, err := svc.ListAccountsForCustomer(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, accounts, got)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		cache := new(MockCacheClient)
		svc := NewAccountService(nil, accountRepo, new(MockCustomerRepository), cache)

		payload, err := json.Marshal(accounts)
		assert.NoError(t, err)
		cache.On("Get", mock.Anything, "accounts:10").
			Return(redis.NewStringResult(string(payload), nil)).Once()

		got, err := svc.ListAccountsForCustomer(ctx, 10)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
		accountRepo.AssertNotCalled(t, "GetAccountsByCustomerID", mock.Anything)
	})

	t.Run("nil cache still serves from the repository", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewAccountService(nil, accountRepo, new(MockCustomerRepository), nil)

		accountRepo.On("GetAccountsByCustomerID", 10).Return(accounts, nil).Once()

		got, err := svc.ListAccountsForCustomer(ctx, 10)

		assert.NoError(t, err)
		assert.Equal(t, accounts, got)
	})
}

func TestApplyInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("savings account accrues interest", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		accountRepo := new(MockAccountRepository)
		svc := NewAccountService(db, accountRepo, new(MockCustomerRepository), nil)
		account := &model.Account{ID: 1, CustomerID: 10, AccountType: model.AccountTypeSavings, Balance: decimal.NewFromInt(1000)}

		dbMock.ExpectBegin()
		accountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(account, nil).Once()
		accountRepo.On("UpdateAccountBalance", mock.Anything, 1, decimalEq(decimal.NewFromInt(1020))).Return(nil).Once()
		dbMock.ExpectCommit()

		updated, err := svc.ApplyInterest(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, updated.Balance.Equal(decimal.NewFromInt(1020)))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("checking account does not accrue interest", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		accountRepo := new(MockAccountRepository)
		svc := NewAccountService(db, accountRepo, new(MockCustomerRepository), nil)
		account := &model.Account{ID: 1, CustomerID: 10, AccountType: model.AccountTypeChecking, Balance: decimal.NewFromInt(1000)}

		dbMock.ExpectBegin()
		accountRepo.On("GetAccountForUpdate", mock.Anything, 1).Return(account, nil).Once()
		dbMock.ExpectRollback()

		_, err = svc.ApplyInterest(ctx, 1)

		assert.ErrorIs(t, err, policy.ErrInterestNotSupported)
		accountRepo.AssertNotCalled(t, "UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestProcessOverdraft(t *testing.T) {
	ctx := context.Background()

	t.Run("checking account supports overdraft", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewAccountService(nil, accountRepo, new(MockCustomerRepository), nil)
		accountRepo.On("GetAccountByID", 1).
			Return(&model.Account{ID: 1, AccountType: model.AccountTypeChecking}, nil).Once()

		assert.NoError(t, svc.ProcessOverdraft(ctx, 1))
	})

	t.Run("savings account rejects overdraft with a distinct error", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		svc := NewAccountService(nil, accountRepo, new(MockCustomerRepository), nil)
		accountRepo.On("GetAccountByID", 2).
			Return(&model.Account{ID: 2, AccountType: model.AccountTypeSavings}, nil).Once()

		err := svc.ProcessOverdraft(ctx, 2)

		assert.ErrorIs(t, err, policy.ErrOverdraftNotSupported)
		var insufficient *InsufficientFundsError
		assert.False(t, errors.As(err, &insufficient))
	})
}
