package treasury

import (
	"strings"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Safe is a named cash pool (drawer, bank account, wallet). It stores no
// balance: the balance is always derived from the five transaction streams.
type Safe struct {
	shared.BaseAggregateRoot
	Name string `gorm:"uniqueIndex;not null"`
}

// TableName returns the database table name
func (Safe) TableName() string {
	return "safes"
}

// NewSafe creates a new treasury account
func NewSafe(name string) (*Safe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SAFE_NAME", "Safe name cannot be empty")
	}
	return &Safe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename changes the safe name
func (s *Safe) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SAFE_NAME", "Safe name cannot be empty")
	}
	s.Name = name
	s.IncrementVersion()
	return nil
}
