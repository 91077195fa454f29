package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// The mobile client reads prices as numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Registry is the full set of persisted entities, parents before children.
var Registry = []interface{}{
	&MenuItem{},
	&Customization{},
	&Order{},
	&OrderItem{},
}

// Migrate creates or updates the tables for every registered entity.
func Migrate(db *gorm.DB) error {
	for _, entity := range Registry {
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", entity, err)
		}
	}
	return nil
}
