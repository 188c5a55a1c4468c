package service

import (
	"context"
	"database/sql"
	"errors"

	"go-banking-core/model"
	"go-banking-core/repository"
)

// CustomerService owns the customer lifecycle. The engines only ever read
// customers through the repository.
type CustomerService struct {
	customerRepo repository.ICustomerRepository
}

func NewCustomerService(customerRepo repository.ICustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomer registers a new customer at the default Bronze tier.
// Customer names are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, req model.CustomerCreationRequest) (*model.Customer, error) {
	existing, err := s.customerRepo.GetCustomerByName(req.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerAlreadyExists
	}

	customer := &model.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Tier:  model.TierBronze,
	}
	if err := s.customerRepo.CreateCustomer(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID int) (*model.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.GetAllCustomers()
}
