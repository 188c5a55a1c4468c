package repository

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"go-banking-core/logger"
	"go-banking-core/model"
)

// ITransactionRepository defines the append-only transaction log of the
// ledger store. Appends always run inside a unit of work; reads that feed a
// decision inside a unit of work (the monthly fee check) do too, so the
// decision is made under the same locks as the write it guards.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error
	GetTransactionsByAccountID(accountID int) ([]*model.Transaction, error)
	GetFeeTransactionsInRange(tx *sql.Tx, accountID int, start, end time.Time) ([]*model.Transaction, error)
}

type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"type":   transaction.Type,
		"amount": transaction.Amount.String(),
	})
	log.Info("Executing query to append a transaction record")

	query := `INSERT INTO transactions (from_account_id, to_account_id, amount, type, transfer_group_id, description)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := tx.QueryRow(query,
		nullableInt(transaction.FromAccountID),
		nullableInt(transaction.ToAccountID),
		transaction.Amount,
		transaction.Type,
		nullableString(transaction.TransferGroupID),
		transaction.Description,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute append transaction query")
		return err
	}
	return nil
}

// GetTransactionsByAccountID returns the account's history, newest first.
func (r *TransactionRepository) GetTransactionsByAccountID(accountID int) ([]*model.Transaction, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get transactions by account ID")

	query := `
		SELECT id, from_account_id, to_account_id, amount, type, transfer_group_id, description, created_at
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions by account ID")
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetFeeTransactionsInRange returns FEE records debited from the account
// with a timestamp inside [start, end].
func (r *TransactionRepository) GetFeeTransactionsInRange(tx *sql.Tx, accountID int, start, end time.Time) ([]*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"start":      start,
		"end":        end,
	})
	log.Info("Executing query to get fee transactions in range")

	query := `
		SELECT id, from_account_id, to_account_id, amount, type, transfer_group_id, description, created_at
		FROM transactions
		WHERE from_account_id = $1 AND type = $2 AND created_at BETWEEN $3 AND $4`

	rows, err := tx.Query(query, accountID, model.TransactionFee, start, end)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for fee transactions in range")
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	for rows.Next() {
		var (
			t       model.Transaction
			from    sql.NullInt64
			to      sql.NullInt64
			groupID sql.NullString
		)
		if err := rows.Scan(&t.ID, &from, &to, &t.Amount, &t.Type, &groupID, &t.Description, &t.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		if from.Valid {
			id := int(from.Int64)
			t.FromAccountID = &id
		}
		if to.Valid {
			id := int(to.Int64)
			t.ToAccountID = &id
		}
		if groupID.Valid {
			t.TransferGroupID = &groupID.String
		}
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
