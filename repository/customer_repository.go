package repository

import (
	"database/sql"

	"go-banking-core/logger"
	"go-banking-core/model"
)

// ICustomerRepository defines the contract for customer reads and writes.
// The engines only ever read customers; mutation belongs to the customer
// service.
type ICustomerRepository interface {
	CreateCustomer(customer *model.Customer) error
	GetCustomerByID(customerID int) (*model.Customer, error)
	GetCustomerByName(name string) (*model.Customer, error)
	GetAllCustomers() ([]*model.Customer, error)
}

type CustomerRepository struct {
	DB *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) CreateCustomer(customer *model.Customer) error {
	log := logger.Log.WithField("name", customer.Name)
	log.Info("Executing query to create a new customer")

	query := `INSERT INTO customers (name, email, phone, tier) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, customer.Name, customer.Email, customer.Phone, customer.Tier).
		Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create customer query")
		return err
	}
	return nil
}

func (r *CustomerRepository) GetCustomerByID(customerID int) (*model.Customer, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get customer by ID")

	customer := &model.Customer{}
	query := `SELECT id, name, email, phone, tier, created_at FROM customers WHERE id = $1`
	err := r.DB.QueryRow(query, customerID).
		Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Tier, &customer.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get customer query")
		}
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) GetCustomerByName(name string) (*model.Customer, error) {
	customer := &model.Customer{}
	query := `SELECT id, name, email, phone, tier, created_at FROM customers WHERE name = $1`
	err := r.DB.QueryRow(query, name).
		Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.Tier, &customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *CustomerRepository) GetAllCustomers() ([]*model.Customer, error) {
	logger.Log.Info("Executing query to get all customers")

	query := `SELECT id, name, email, phone, tier, created_at FROM customers`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all customers")
		return nil, err
	}
	defer rows.Close()

	var customers []*model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Tier, &c.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan customer row")
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
