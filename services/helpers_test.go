package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-order-go/config"
	"coffee-order-go/database"
	"coffee-order-go/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Database{Dialect: "sqlite", URI: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg, "error", zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func qty(n int) *int {
	return &n
}

func createMenuItem(t *testing.T, svc *MenuService, name, price string) *models.MenuItem {
	t.Helper()
	item, err := svc.Create(context.Background(), CreateMenuItemInput{
		Name:        name,
		Description: name + " description",
		Price:       dec(price),
		Category:    "Beverage",
	})
	if err != nil {
		t.Fatalf("create menu item %s: %v", name, err)
	}
	return item
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func janeDoeSubmission(menuItemID uint) OrderSubmission {
	return OrderSubmission{
		Customer: CustomerInput{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "555-1234",
		},
		OrderType: models.OrderTypePickup,
		Items: []OrderItemInput{
			{MenuItemID: menuItemID, Name: "Latte", Quantity: qty(2), Price: dec("3.49")},
		},
		Subtotal:    dec("6.98"),
		Tax:         dec("0.56"),
		DeliveryFee: dec("0"),
		Total:       dec("7.54"),
	}
}
