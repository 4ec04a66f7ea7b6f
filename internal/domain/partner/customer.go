package partner

import (
	"strings"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Customer is a sales counterparty
type Customer struct {
	shared.BaseAggregateRoot
	Name  string `gorm:"not null;index"`
	Phone string ``
	Notes string ``
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
	}, nil
}

// Update changes the customer's contact details
func (c *Customer) Update(name, phone, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Notes = notes
	c.IncrementVersion()
	return nil
}
