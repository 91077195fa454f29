package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Customization is an option group attached to a menu item. Options[i] costs
// PriceAdjustment[i] extra.
type Customization struct {
	ID              uint                                 `json:"id" gorm:"primaryKey"`
	MenuItemID      uint                                 `json:"menuItemId" gorm:"not null;index"`
	Type            string                               `json:"type" gorm:"size:255;not null"`
	Options         datatypes.JSONSlice[string]          `json:"options" gorm:"not null"`
	PriceAdjustment datatypes.JSONSlice[decimal.Decimal] `json:"priceAdjustment" gorm:"not null"`
	CreatedAt       time.Time                            `json:"createdAt"`
	UpdatedAt       time.Time                            `json:"updatedAt"`
}

func (Customization) TableName() string {
	return "customizations"
}
