package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// pricingTolerance absorbs client-side rounding of tax and line totals.
var pricingTolerance = decimal.NewFromFloat(0.01)

// CheckPricing recomputes the subtotal from the submitted lines and checks
// that total = subtotal + tax + deliveryFee. Line prices are taken to
// already include customization adjustments.
func CheckPricing(sub OrderSubmission) error {
	subtotal := decimal.Zero
	for _, item := range sub.Items {
		subtotal = subtotal.Add(snapshotItem(0, item).LineTotal())
	}
	if !withinTolerance(subtotal, *sub.Subtotal) {
		return ValidationError{
			Field:   "subtotal",
			Message: fmt.Sprintf("does not match line items (expected %s)", subtotal.StringFixed(2)),
		}
	}

	deliveryFee := decimal.Zero
	if sub.DeliveryFee != nil {
		deliveryFee = *sub.DeliveryFee
	}
	total := sub.Subtotal.Add(*sub.Tax).Add(deliveryFee)
	if !withinTolerance(total, *sub.Total) {
		return ValidationError{
			Field:   "total",
			Message: fmt.Sprintf("does not equal subtotal + tax + deliveryFee (expected %s)", total.StringFixed(2)),
		}
	}
	return nil
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(pricingTolerance)
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}
