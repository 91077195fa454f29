package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-order-go/models"
)

func TestOrderService_Create(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	order, err := orders.Create(context.Background(), janeDoeSubmission(latte.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}
	if !order.Total.Equal(*dec("7.54")) {
		t.Errorf("expected total 7.54, got %s", order.Total)
	}
	if len(order.OrderItems) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.OrderItems))
	}
	item := order.OrderItems[0]
	if item.Quantity != 2 || item.Name != "Latte" || item.MenuItemID != latte.ID {
		t.Errorf("unexpected order item %+v", item)
	}
	if item.OrderID != order.ID {
		t.Errorf("item not tied to order: %d vs %d", item.OrderID, order.ID)
	}
	if order.Address != nil {
		t.Errorf("pickup order should have no address, got %q", *order.Address)
	}
}

func TestOrderService_Create_IsAtomic(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	if _, err := orders.Create(context.Background(), janeDoeSubmission(latte.ID)); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	ordersBefore := countRows(t, db, &models.Order{})
	itemsBefore := countRows(t, db, &models.OrderItem{})

	injected := errors.New("injected order item failure")
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "order_items" {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = orders.Create(context.Background(), janeDoeSubmission(latte.ID))
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("expected StorageError, got %T", err)
	}

	if got := countRows(t, db, &models.Order{}); got != ordersBefore {
		t.Errorf("order count changed: %d -> %d", ordersBefore, got)
	}
	if got := countRows(t, db, &models.OrderItem{}); got != itemsBefore {
		t.Errorf("order item count changed: %d -> %d", itemsBefore, got)
	}
}

func TestOrderService_Create_UnknownMenuItem(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, false, zap.NewNop())

	_, err := orders.Create(context.Background(), janeDoeSubmission(42))
	var notFound NotFoundError
	if !errors.As(err, &notFound) || notFound.Resource != "menu item" || notFound.ID != 42 {
		t.Fatalf("expected menu item 42 not found, got %v", err)
	}
	if got := countRows(t, db, &models.Order{}); got != 0 {
		t.Errorf("expected no orders, got %d", got)
	}
}

func TestOrderService_SnapshotSurvivesMenuChange(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	order, err := orders.Create(context.Background(), janeDoeSubmission(latte.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "Oat Latte"
	if _, err := menu.Update(context.Background(), latte.ID, UpdateMenuItemInput{Price: dec("4.49"), Name: &newName}); err != nil {
		t.Fatalf("update menu price: %v", err)
	}

	reloaded, err := orders.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	item := reloaded.OrderItems[0]
	if !item.Price.Equal(*dec("3.49")) {
		t.Errorf("snapshot price changed to %s", item.Price)
	}
	if item.Name != "Latte" {
		t.Errorf("snapshot name changed to %q", item.Name)
	}

	if err := menu.Delete(context.Background(), latte.ID); err != nil {
		t.Fatalf("delete menu item: %v", err)
	}
	if _, err := orders.Get(context.Background(), order.ID); err != nil {
		t.Errorf("order should survive menu item deletion: %v", err)
	}
}

func TestOrderService_RoundTripKeepsItemOrder(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")
	bagel := createMenuItem(t, menu, "Bagel", "2.50")
	espresso := createMenuItem(t, menu, "Espresso", "2.99")

	sub := janeDoeSubmission(latte.ID)
	sub.Items = []OrderItemInput{
		{MenuItemID: espresso.ID, Name: "Espresso", Quantity: qty(1), Price: dec("2.99")},
		{ID: bagel.ID, Name: "Bagel", Quantity: qty(3), Price: dec("2.50")},
		{
			MenuItemID: latte.ID, Name: "Latte", Quantity: qty(1), Price: dec("3.99"),
			Customizations: []models.SelectedCustomization{
				{Type: "Milk", Option: "Oat Milk", PriceAdjustment: *dec("0.50")},
			},
		},
	}

	created, err := orders.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := orders.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if len(got.OrderItems) != len(sub.Items) {
		t.Fatalf("expected %d items, got %d", len(sub.Items), len(got.OrderItems))
	}
	for i, want := range sub.Items {
		item := got.OrderItems[i]
		if item.Name != want.Name || item.Quantity != *want.Quantity || !item.Price.Equal(*want.Price) {
			t.Errorf("item %d = %s x%d @ %s, want %s x%d @ %s",
				i, item.Name, item.Quantity, item.Price, want.Name, *want.Quantity, want.Price)
		}
	}
	if got.OrderItems[1].MenuItemID != bagel.ID {
		t.Errorf("id alias not honoured: %d", got.OrderItems[1].MenuItemID)
	}
	customs := got.OrderItems[2].Customizations
	if len(customs) != 1 || customs[0].Option != "Oat Milk" || !customs[0].PriceAdjustment.Equal(*dec("0.5")) {
		t.Errorf("unexpected customizations %+v", customs)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *OrderSubmission)
		field  string
	}{
		{name: "missing name", mutate: func(s *OrderSubmission) { s.Customer.Name = "" }, field: "customer.name"},
		{name: "bad email", mutate: func(s *OrderSubmission) { s.Customer.Email = "jane-at-example" }, field: "customer.email"},
		{name: "missing phone", mutate: func(s *OrderSubmission) { s.Customer.Phone = "" }, field: "customer.phone"},
		{name: "bad order type", mutate: func(s *OrderSubmission) { s.OrderType = "drive-thru" }, field: "orderType"},
		{name: "no items", mutate: func(s *OrderSubmission) { s.Items = nil }, field: "items"},
		{name: "zero quantity", mutate: func(s *OrderSubmission) { s.Items[0].Quantity = qty(0) }, field: "items[0].quantity"},
		{name: "negative quantity", mutate: func(s *OrderSubmission) { s.Items[0].Quantity = qty(-1) }, field: "items[0].quantity"},
		{name: "negative price", mutate: func(s *OrderSubmission) { s.Items[0].Price = dec("-1") }, field: "items[0].price"},
		{name: "missing price", mutate: func(s *OrderSubmission) { s.Items[0].Price = nil }, field: "items[0].price"},
		{name: "missing menu item", mutate: func(s *OrderSubmission) { s.Items[0].MenuItemID = 0 }, field: "items[0].menuItemId"},
		{name: "missing total", mutate: func(s *OrderSubmission) { s.Total = nil }, field: "total"},
		{name: "negative tax", mutate: func(s *OrderSubmission) { s.Tax = dec("-0.01") }, field: "tax"},
		{name: "delivery without address", mutate: func(s *OrderSubmission) {
			s.OrderType = models.OrderTypeDelivery
			s.Customer.City = "Springfield"
			s.Customer.Zip = "12345"
		}, field: "customer.address"},
	}

	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := janeDoeSubmission(latte.ID)
			tt.mutate(&sub)

			_, err := orders.Create(context.Background(), sub)
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field %q, got %q (%v)", tt.field, validationErr.Field, err)
			}
		})
	}

	if got := countRows(t, db, &models.Order{}); got != 0 {
		t.Errorf("rejected submissions left %d orders", got)
	}
}

func TestOrderService_Create_Defaults(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	sub := janeDoeSubmission(latte.ID)
	sub.OrderType = ""
	sub.DeliveryFee = nil
	sub.Items[0].Quantity = nil
	sub.Subtotal = dec("3.49")
	sub.Total = dec("4.05")

	order, err := orders.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.OrderType != models.OrderTypePickup {
		t.Errorf("expected pickup order type, got %q", order.OrderType)
	}
	if !order.DeliveryFee.IsZero() {
		t.Errorf("expected zero delivery fee, got %s", order.DeliveryFee)
	}
	if len(order.OrderItems) != 1 || order.OrderItems[0].Quantity != 1 {
		t.Errorf("expected one item with quantity 1, got %+v", order.OrderItems)
	}

	strict := NewOrderService(db, true, zap.NewNop())
	if _, err := strict.Create(context.Background(), sub); err != nil {
		t.Errorf("strict pricing should count a missing quantity as 1: %v", err)
	}
}

func TestOrderService_Create_RoundsMoneyToCents(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	sub := janeDoeSubmission(latte.ID)
	sub.Items[0].Price = dec("3.4949")
	sub.Items[0].Customizations = []models.SelectedCustomization{
		{Type: "Milk", Option: "Oat Milk", PriceAdjustment: *dec("0.505")},
	}
	sub.Subtotal = dec("6.981")
	sub.Tax = dec("0.555")
	sub.Total = dec("7.5449")

	created, err := orders.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	order, err := orders.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{name: "subtotal", got: order.Subtotal, want: "6.98"},
		{name: "tax", got: order.Tax, want: "0.56"},
		{name: "total", got: order.Total, want: "7.54"},
		{name: "price", got: order.OrderItems[0].Price, want: "3.49"},
		{name: "adjustment", got: order.OrderItems[0].Customizations[0].PriceAdjustment, want: "0.51"},
	}
	for _, c := range checks {
		if !c.got.Equal(*dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestOrderService_Create_Delivery(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	sub := janeDoeSubmission(latte.ID)
	sub.OrderType = models.OrderTypeDelivery
	sub.Customer.Address = "1 Main St"
	sub.Customer.City = "Springfield"
	sub.Customer.Zip = "12345"
	sub.DeliveryFee = dec("2.00")
	sub.Total = dec("9.54")
	sub.SpecialInstructions = "Ring twice"

	order, err := orders.Create(context.Background(), sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Address == nil || *order.Address != "1 Main St" {
		t.Errorf("address not stored: %v", order.Address)
	}
	if order.SpecialInstructions == nil || *order.SpecialInstructions != "Ring twice" {
		t.Errorf("instructions not stored: %v", order.SpecialInstructions)
	}
	if !order.DeliveryFee.Equal(*dec("2")) {
		t.Errorf("expected delivery fee 2, got %s", order.DeliveryFee)
	}
}

func TestOrderService_StrictPricing(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	lenient := NewOrderService(db, false, zap.NewNop())
	strict := NewOrderService(db, true, zap.NewNop())

	sub := janeDoeSubmission(latte.ID)
	sub.Subtotal = dec("1.00")
	sub.Total = dec("1.56")

	if _, err := lenient.Create(context.Background(), sub); err != nil {
		t.Errorf("lenient service should accept client pricing: %v", err)
	}
	if _, err := strict.Create(context.Background(), sub); !IsValidation(err) {
		t.Errorf("strict service should reject mismatched subtotal, got %v", err)
	}
	if _, err := strict.Create(context.Background(), janeDoeSubmission(latte.ID)); err != nil {
		t.Errorf("strict service should accept consistent pricing: %v", err)
	}
}

func TestOrderService_GetMissing(t *testing.T) {
	orders := NewOrderService(newTestDB(t), false, zap.NewNop())

	_, err := orders.Get(context.Background(), 999999)
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestOrderService_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	var ids []uint
	for i := 0; i < 3; i++ {
		o, err := orders.Create(context.Background(), janeDoeSubmission(latte.ID))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, o.ID)
	}

	list, err := orders.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(list))
	}
	if list[0].ID != ids[2] || list[2].ID != ids[0] {
		t.Errorf("expected newest first, got %d,%d,%d", list[0].ID, list[1].ID, list[2].ID)
	}
	for _, o := range list {
		if len(o.OrderItems) != 1 {
			t.Errorf("order %d missing items", o.ID)
		}
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	menu := NewMenuService(db, zap.NewNop())
	orders := NewOrderService(db, false, zap.NewNop())
	latte := createMenuItem(t, menu, "Latte", "3.49")

	order, err := orders.Create(context.Background(), janeDoeSubmission(latte.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Any status may follow any other, including leaving cancelled.
	sequence := []models.OrderStatus{
		models.OrderStatusCancelled,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusPending,
	}
	for _, status := range sequence {
		updated, err := orders.UpdateStatus(context.Background(), order.ID, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("expected %s, got %s", status, updated.Status)
		}
		reloaded, _ := orders.Get(context.Background(), order.ID)
		if reloaded.Status != status {
			t.Errorf("stored status %s, want %s", reloaded.Status, status)
		}
	}

	if _, err := orders.UpdateStatus(context.Background(), order.ID, "shipped"); !IsValidation(err) {
		t.Errorf("expected ValidationError for unknown status, got %v", err)
	}
	reloaded, _ := orders.Get(context.Background(), order.ID)
	if reloaded.Status != models.OrderStatusPending {
		t.Errorf("invalid update changed status to %s", reloaded.Status)
	}

	if _, err := orders.UpdateStatus(context.Background(), 999999, models.OrderStatusReady); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}
