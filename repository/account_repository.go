package repository

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"go-banking-core/logger"
	"go-banking-core/model"
)

// IAccountRepository defines the account side of the ledger store. Writes
// that participate in a unit of work take the *sql.Tx it runs under.
type IAccountRepository interface {
	CreateAccount(account *model.Account) error
	GetAccountByID(accountID int) (*model.Account, error)
	GetAccountsByCustomerID(customerID int) ([]*model.Account, error)
	GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error)
	UpdateAccountBalance(tx *sql.Tx, accountID int, newBalance decimal.Decimal) error
}

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) CreateAccount(account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":  account.CustomerID,
		"account_type": account.AccountType,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (customer_id, account_type, balance, currency) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, account.CustomerID, account.AccountType, account.Balance, account.Currency).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

func (r *AccountRepository) GetAccountByID(accountID int) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account by ID")

	account := &model.Account{}
	query := `SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE id = $1`
	err := r.DB.QueryRow(query, accountID).
		Scan(&account.ID, &account.CustomerID, &account.AccountType, &account.Balance, &account.Currency, &account.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get account query")
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) GetAccountsByCustomerID(customerID int) ([]*model.Account, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get accounts by customer ID")

	query := `SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE customer_id = $1`
	rows, err := r.DB.Query(query, customerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for accounts by customer ID")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.CustomerID, &acc.AccountType, &acc.Balance, &acc.Currency, &acc.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// GetAccountForUpdate reads an account under a row lock. The lock serializes
// the read-validate-write of the balance against concurrent writers and is
// held until the surrounding unit of work commits or rolls back.
func (r *AccountRepository) GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account for update")

	account := &model.Account{}
	query := `SELECT id, customer_id, account_type, balance, currency, created_at FROM accounts WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, accountID).
		Scan(&account.ID, &account.CustomerID, &account.AccountType, &account.Balance, &account.Currency, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get account for update query")
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) UpdateAccountBalance(tx *sql.Tx, accountID int, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance.String(),
	})
	log.Info("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return err
	}
	return nil
}
