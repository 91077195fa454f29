package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-order-go/models"
)

type CustomerInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=64"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type OrderItemInput struct {
	MenuItemID uint `json:"menuItemId"`
	// ID is accepted as an alias for MenuItemID; the mobile client sends the
	// menu item as-is.
	ID             uint                           `json:"id"`
	Name           string                         `json:"name" validate:"required,max=255"`
	Quantity       *int                           `json:"quantity" validate:"omitempty,gt=0"`
	Price          *decimal.Decimal               `json:"price" validate:"required,gte=0"`
	Customizations []models.SelectedCustomization `json:"customizations"`
}

func (i OrderItemInput) menuItemID() uint {
	if i.MenuItemID != 0 {
		return i.MenuItemID
	}
	return i.ID
}

// quantity defaults to 1 when the client leaves it out.
func (i OrderItemInput) quantity() int {
	if i.Quantity == nil {
		return 1
	}
	return *i.Quantity
}

// OrderSubmission is a checkout request as sent by the client.
type OrderSubmission struct {
	Customer            CustomerInput    `json:"customer" validate:"required"`
	OrderType           models.OrderType `json:"orderType" validate:"omitempty,oneof=pickup delivery"`
	Items               []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Subtotal            *decimal.Decimal `json:"subtotal" validate:"required,gte=0"`
	Tax                 *decimal.Decimal `json:"tax" validate:"required,gte=0"`
	DeliveryFee         *decimal.Decimal `json:"deliveryFee" validate:"omitempty,gte=0"`
	Total               *decimal.Decimal `json:"total" validate:"required,gte=0"`
	SpecialInstructions string           `json:"specialInstructions"`
}

type OrderService struct {
	db            *gorm.DB
	validate      *validator.Validate
	strictPricing bool
	logger        *zap.Logger
}

func NewOrderService(db *gorm.DB, strictPricing bool, logger *zap.Logger) *OrderService {
	return &OrderService{
		db:            db,
		validate:      newValidator(),
		strictPricing: strictPricing,
		logger:        logger.Named("order_service"),
	}
}

// Create persists the order and its line items in one transaction and
// returns the stored order with items.
func (s *OrderService) Create(ctx context.Context, sub OrderSubmission) (*models.Order, error) {
	if err := s.validateSubmission(sub); err != nil {
		s.logger.Warn("Rejected order submission", zap.Error(err))
		return nil, err
	}

	order := newOrder(sub)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureMenuItemsExist(tx, sub.Items); err != nil {
			return err
		}

		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return storageError("create order", err)
		}

		items := make([]models.OrderItem, 0, len(sub.Items))
		for _, in := range sub.Items {
			items = append(items, snapshotItem(order.ID, in))
		}
		if err := tx.Create(&items).Error; err != nil {
			return storageError("create order items", err)
		}
		return nil
	})
	if err != nil {
		if !IsValidation(err) && !IsNotFound(err) {
			s.logger.Error("Failed to create order", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_type", string(order.OrderType)),
		zap.Int("items", len(sub.Items)),
		zap.String("total", order.Total.StringFixed(2)))

	return s.Get(ctx, order.ID)
}

func (s *OrderService) validateSubmission(sub OrderSubmission) error {
	if err := validateStruct(s.validate, sub); err != nil {
		return err
	}

	if sub.OrderType == models.OrderTypeDelivery {
		for field, value := range map[string]string{
			"customer.address": sub.Customer.Address,
			"customer.city":    sub.Customer.City,
			"customer.zip":     sub.Customer.Zip,
		} {
			if strings.TrimSpace(value) == "" {
				return ValidationError{Field: field, Message: "is required for delivery orders"}
			}
		}
	}

	for i, item := range sub.Items {
		if item.menuItemID() == 0 {
			return ValidationError{Field: itemField(i, "menuItemId"), Message: "is required"}
		}
	}

	if s.strictPricing {
		return CheckPricing(sub)
	}
	return nil
}

func ensureMenuItemsExist(tx *gorm.DB, items []OrderItemInput) error {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		id := item.menuItemID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var found []uint
	if err := tx.Model(&models.MenuItem{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return storageError("look up menu items", err)
	}
	existing := make(map[uint]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return NotFoundError{Resource: "menu item", ID: id}
		}
	}
	return nil
}

func newOrder(sub OrderSubmission) *models.Order {
	deliveryFee := decimal.Zero
	if sub.DeliveryFee != nil {
		deliveryFee = *sub.DeliveryFee
	}
	orderType := sub.OrderType
	if orderType == "" {
		orderType = models.OrderTypePickup
	}

	return &models.Order{
		CustomerName:        sub.Customer.Name,
		CustomerEmail:       sub.Customer.Email,
		CustomerPhone:       sub.Customer.Phone,
		OrderType:           orderType,
		Address:             optional(sub.Customer.Address),
		City:                optional(sub.Customer.City),
		Zip:                 optional(sub.Customer.Zip),
		Subtotal:            money(*sub.Subtotal),
		Tax:                 money(*sub.Tax),
		DeliveryFee:         money(deliveryFee),
		Total:               money(*sub.Total),
		SpecialInstructions: optional(sub.SpecialInstructions),
		Status:              models.OrderStatusPending,
	}
}

// snapshotItem copies the submitted line, rounded to cents. It does not read
// the current menu price.
func snapshotItem(orderID uint, in OrderItemInput) models.OrderItem {
	customizations := make([]models.SelectedCustomization, 0, len(in.Customizations))
	for _, c := range in.Customizations {
		c.PriceAdjustment = money(c.PriceAdjustment)
		customizations = append(customizations, c)
	}
	return models.OrderItem{
		OrderID:        orderID,
		MenuItemID:     in.menuItemID(),
		Name:           in.Name,
		Quantity:       in.quantity(),
		Price:          money(*in.Price),
		Customizations: customizations,
	}
}

// money rounds an amount to whole cents, the precision of every price column.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Get returns one order with its items in insertion order.
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems", orderItemsByID).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Resource: "order", ID: id}
		}
		s.logger.Error("Failed to get order", zap.Uint("order_id", id), zap.Error(err))
		return nil, storageError("get order", err)
	}
	return &order, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems", orderItemsByID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, storageError("list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateStatus overwrites the status of an order. Any valid status may
// replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ValidationError{Field: "status", Message: "must be one of [pending preparing ready completed cancelled]"}
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Resource: "order", ID: id}
		}
		return nil, storageError("get order", err)
	}

	if err := s.db.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		s.logger.Error("Failed to update order status", zap.Uint("order_id", id), zap.Error(err))
		return nil, storageError("update order status", err)
	}

	s.logger.Info("Order status updated", zap.Uint("order_id", id), zap.String("status", string(status)))
	return s.Get(ctx, id)
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
