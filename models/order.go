package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in workflow order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

type Order struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	CustomerName        string          `json:"customerName" gorm:"size:255;not null"`
	CustomerEmail       string          `json:"customerEmail" gorm:"size:255;not null"`
	CustomerPhone       string          `json:"customerPhone" gorm:"size:64;not null"`
	OrderType           OrderType       `json:"orderType" gorm:"size:16;not null;default:pickup"`
	Address             *string         `json:"address"`
	City                *string         `json:"city"`
	Zip                 *string         `json:"zip"`
	Subtotal            decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Tax                 decimal.Decimal `json:"tax" gorm:"type:decimal(10,2);not null"`
	DeliveryFee         decimal.Decimal `json:"deliveryFee" gorm:"type:decimal(10,2);not null;default:0"`
	Total               decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	SpecialInstructions *string         `json:"specialInstructions" gorm:"type:text"`
	Status              OrderStatus     `json:"status" gorm:"size:16;not null;default:pending;index"`
	OrderItems          []OrderItem     `json:"OrderItems" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt           time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// SelectedCustomization is the customer's choice within one customization
// group, frozen at order time.
type SelectedCustomization struct {
	Type            string          `json:"type"`
	Option          string          `json:"option"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

// OrderItem is a snapshot of a menu item as it was ordered. MenuItemID is not
// a foreign key; later menu edits never touch past orders.
type OrderItem struct {
	ID             uint                                       `json:"id" gorm:"primaryKey"`
	OrderID        uint                                       `json:"orderId" gorm:"not null;index"`
	MenuItemID     uint                                       `json:"menuItemId" gorm:"not null"`
	Name           string                                     `json:"name" gorm:"size:255;not null"`
	Quantity       int                                        `json:"quantity" gorm:"not null;default:1"`
	Price          decimal.Decimal                            `json:"price" gorm:"type:decimal(10,2);not null"`
	Customizations datatypes.JSONSlice[SelectedCustomization] `json:"customizations"`
	CreatedAt      time.Time                                  `json:"createdAt"`
	UpdatedAt      time.Time                                  `json:"updatedAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
