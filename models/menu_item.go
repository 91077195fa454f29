package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Description    string          `json:"description" gorm:"size:255;not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category       string          `json:"category" gorm:"size:255;not null;index"`
	Customizations []Customization `json:"Customizations,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
