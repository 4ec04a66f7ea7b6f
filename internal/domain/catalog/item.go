package catalog

import (
	"strings"

	"github.com/retailcore/backend/internal/domain/shared"
)

// Item is a sellable product grouping one or more variants (color/size combinations).
type Item struct {
	shared.BaseAggregateRoot
	Name     string        `gorm:"not null;index"`
	Category string        `gorm:"index"`
	Notes    string        ``
	Variants []ItemVariant `gorm:"foreignKey:ItemID"`
}

// TableName returns the database table name
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name, category string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
	}, nil
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	i.Name = name
	i.IncrementVersion()
	return nil
}

// AddVariant attaches a variant to the item
func (i *Item) AddVariant(v *ItemVariant) {
	v.ItemID = i.ID
	i.Variants = append(i.Variants, *v)
	i.IncrementVersion()
}
