package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"coffee-order-go/models"
)

type customization struct {
	kind        string
	options     []string
	adjustments []string
}

type menuEntry struct {
	name           string
	description    string
	price          string
	category       string
	customizations []customization
}

var (
	milk = customization{
		kind:        "Milk",
		options:     []string{"Whole Milk", "Oat Milk", "Almond Milk"},
		adjustments: []string{"0.00", "0.50", "0.50"},
	}
	sugar = customization{
		kind:        "Sugar",
		options:     []string{"No Sugar", "50%", "100%"},
		adjustments: []string{"0.00", "0.00", "0.00"},
	}
)

var menu = []menuEntry{
	{
		name:           "Espresso",
		description:    "A strong and bold coffee shot.",
		price:          "2.99",
		category:       "Beverage",
		customizations: []customization{milk, sugar},
	},
	{
		name:        "Latte",
		description: "Smooth espresso with steamed milk.",
		price:       "3.49",
		category:    "Beverage",
		customizations: []customization{
			{kind: "Espresso Shot", options: []string{"1 Shot", "2 Shots"}, adjustments: []string{"0.50", "1.00"}},
			{kind: "Milk", options: []string{"Whole Milk", "Soy Milk", "Oat Milk"}, adjustments: []string{"0.00", "0.50", "0.50"}},
		},
	},
	{
		name:           "Cappuccino",
		description:    "Espresso topped with foamed milk.",
		price:          "3.99",
		category:       "Beverage",
		customizations: []customization{milk, sugar},
	},
	{
		name:        "Bagel",
		description: "Freshly baked bagel.",
		price:       "2.50",
		category:    "Food",
	},
}

// Run replaces the menu with the starter catalog. Orders are left untouched.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Customization{}).Error; err != nil {
			return fmt.Errorf("clear customizations: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.MenuItem{}).Error; err != nil {
			return fmt.Errorf("clear menu items: %w", err)
		}

		for _, entry := range menu {
			item := models.MenuItem{
				Name:        entry.name,
				Description: entry.description,
				Price:       decimal.RequireFromString(entry.price),
				Category:    entry.category,
			}
			for _, c := range entry.customizations {
				item.Customizations = append(item.Customizations, models.Customization{
					Type:            c.kind,
					Options:         datatypes.JSONSlice[string](c.options),
					PriceAdjustment: toDecimals(c.adjustments),
				})
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create %s: %w", entry.name, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Error seeding data", zap.Error(err))
		return err
	}

	logger.Info("Menu seeded", zap.Int("menu_items", len(menu)))
	return nil
}

func toDecimals(values []string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}
