package partner

import (
	"strings"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Supplier is a purchasing counterparty
type Supplier struct {
	shared.BaseAggregateRoot
	Name  string `gorm:"not null;index"`
	Phone string ``
	Notes string ``
}

// TableName returns the database table name
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, phone string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
	}, nil
}

// Update changes the supplier's contact details
func (s *Supplier) Update(name, phone, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Phone = phone
	s.Notes = notes
	s.IncrementVersion()
	return nil
}
