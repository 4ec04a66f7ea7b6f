package inventory

import (
	"strings"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Location is a physical stock-keeping place (store, warehouse, showroom).
type Location struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"uniqueIndex;not null"`
	Address string ``
}

// TableName returns the database table name
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new stock location
func NewLocation(name, address string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_NAME", "Location name cannot be empty")
	}
	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
	}, nil
}

// Rename changes the location name
func (l *Location) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_LOCATION_NAME", "Location name cannot be empty")
	}
	l.Name = name
	l.IncrementVersion()
	return nil
}
