// repository/account_repository_test.go
package repository

import (
	"database/sql"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-banking-core/logger"
	"go-banking-core/model"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dbMock
}

func accountColumns() []string {
	return []string{"id", "customer_id", "account_type", "balance", "currency", "created_at"}
}

func TestAccountRepository_CreateAccount(t *testing.T) {
	db, dbMock := newMockDB(t)
	repo := NewAccountRepository(db)

	account := &model.Account{
		CustomerID:  10,
		AccountType: model.AccountTypeChecking,
		Balance:     decimal.Zero,
		Currency:    "USD",
	}

	dbMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts (customer_id, account_type, balance, currency) VALUES ($1, $2, $3, $4) RETURNING id, created_at`)).
		WithArgs(account.CustomerID, account.AccountType, account.Balance, account.Currency).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	err := repo.CreateAccount(account)

	assert.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_GetAccountByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, dbMock := newMockDB(t)
		repo := NewAccountRepository(db)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE id = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(accountColumns()).
				AddRow(1, 10, "SAVINGS", "1500.00", "USD", time.Now()))

		account, err := repo.GetAccountByID(1)

		assert.NoError(t, err)
		assert.Equal(t, model.AccountTypeSavings, account.AccountType)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("1500.00")))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, dbMock := newMockDB(t)
		repo := NewAccountRepository(db)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE id = $1`)).
			WithArgs(404).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetAccountByID(404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestAccountRepository_GetAccountForUpdate(t *testing.T) {
	db, dbMock := newMockDB(t)
	repo := NewAccountRepository(db)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE id = $1 FOR UPDATE`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(accountColumns()).
			AddRow(1, 10, "CHECKING", "100.00", "USD", time.Now()))
	dbMock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	account, err := repo.GetAccountForUpdate(tx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateAccountBalance(t *testing.T) {
	db, dbMock := newMockDB(t)
	repo := NewAccountRepository(db)
	newBalance := decimal.RequireFromString("80.00")

	dbMock.ExpectBegin()
	dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET balance = $1 WHERE id = $2`)).
		WithArgs(newBalance, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	err = repo.UpdateAccountBalance(tx, 1, newBalance)

	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
