package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-order-go/models"
)

type CustomizationInput struct {
	Type            string            `json:"type" validate:"required,max=255"`
	Options         []string          `json:"options" validate:"required,min=1,dive,required"`
	PriceAdjustment []decimal.Decimal `json:"priceAdjustment" validate:"required,min=1,dive,gte=0"`
}

type CreateMenuItemInput struct {
	Name           string               `json:"name" validate:"required,max=255"`
	Description    string               `json:"description" validate:"max=255"`
	Price          *decimal.Decimal     `json:"price" validate:"required,gte=0"`
	Category       string               `json:"category" validate:"required,max=255"`
	Customizations []CustomizationInput `json:"customizations" validate:"dive"`
}

// UpdateMenuItemInput is a partial update. Nil fields are left alone; a
// non-nil Customizations replaces the whole set.
type UpdateMenuItemInput struct {
	Name           *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string              `json:"description" validate:"omitempty,max=255"`
	Price          *decimal.Decimal     `json:"price" validate:"omitempty,gte=0"`
	Category       *string              `json:"category" validate:"omitempty,min=1,max=255"`
	Customizations []CustomizationInput `json:"customizations" validate:"omitempty,dive"`
}

type MenuService struct {
	db       *gorm.DB
	validate *validator.Validate
	logger   *zap.Logger
}

func NewMenuService(db *gorm.DB, logger *zap.Logger) *MenuService {
	return &MenuService{
		db:       db,
		validate: newValidator(),
		logger:   logger.Named("menu_service"),
	}
}

// List returns the whole menu with customizations.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Customizations", customizationsByID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		s.logger.Error("Failed to list menu items", zap.Error(err))
		return nil, storageError("list menu items", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	return getMenuItem(s.db.WithContext(ctx), id)
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if err := checkCustomizations(in.Customizations); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       money(*in.Price),
		Category:    in.Category,
	}

	var created *models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return writeError("create menu item", in.Name, err)
		}
		if err := replaceCustomizations(tx, item.ID, in.Customizations); err != nil {
			return err
		}
		var err error
		created, err = getMenuItem(tx, item.ID)
		return err
	})
	if err != nil {
		s.logWriteError("Failed to create menu item", err)
		return nil, err
	}

	s.logger.Info("Menu item created", zap.Uint("menu_item_id", item.ID), zap.String("name", item.Name))
	return created, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, in UpdateMenuItemInput) (*models.MenuItem, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if err := checkCustomizations(in.Customizations); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		updates["price"] = money(*in.Price)
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if len(updates) == 0 && len(in.Customizations) == 0 {
		return nil, ValidationError{Message: "no update fields provided"}
	}

	var updated *models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{Resource: "menu item", ID: id}
			}
			return storageError("get menu item", err)
		}

		if len(updates) > 0 {
			if err := tx.Model(&item).Updates(updates).Error; err != nil {
				return writeError("update menu item", item.Name, err)
			}
		}
		// An empty customizations list leaves the existing ones alone.
		if len(in.Customizations) > 0 {
			if err := replaceCustomizations(tx, id, in.Customizations); err != nil {
				return err
			}
		}

		var err error
		updated, err = getMenuItem(tx, id)
		return err
	})
	if err != nil {
		s.logWriteError("Failed to update menu item", err)
		return nil, err
	}

	s.logger.Info("Menu item updated", zap.Uint("menu_item_id", id))
	return updated, nil
}

// Delete removes a menu item together with its customizations. Past order
// items keep their snapshot.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.Customization{}).Error; err != nil {
			return storageError("delete customizations", err)
		}
		res := tx.Delete(&models.MenuItem{}, id)
		if res.Error != nil {
			return storageError("delete menu item", res.Error)
		}
		if res.RowsAffected == 0 {
			return NotFoundError{Resource: "menu item", ID: id}
		}
		return nil
	})
	if err != nil {
		s.logWriteError("Failed to delete menu item", err)
		return err
	}

	s.logger.Info("Menu item deleted", zap.Uint("menu_item_id", id))
	return nil
}

// Customizations lists the option groups of one menu item. An unknown item
// yields an empty list.
func (s *MenuService) Customizations(ctx context.Context, menuItemID uint) ([]models.Customization, error) {
	var customizations []models.Customization
	err := s.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Order("id ASC").
		Find(&customizations).Error
	if err != nil {
		s.logger.Error("Failed to fetch customizations", zap.Uint("menu_item_id", menuItemID), zap.Error(err))
		return nil, storageError("list customizations", err)
	}
	if customizations == nil {
		customizations = []models.Customization{}
	}
	return customizations, nil
}

func (s *MenuService) logWriteError(msg string, err error) {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		s.logger.Error(msg, zap.Error(err))
		return
	}
	s.logger.Warn(msg, zap.Error(err))
}

func getMenuItem(db *gorm.DB, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := db.Preload("Customizations", customizationsByID).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{Resource: "menu item", ID: id}
		}
		return nil, storageError("get menu item", err)
	}
	return &item, nil
}

func replaceCustomizations(tx *gorm.DB, menuItemID uint, inputs []CustomizationInput) error {
	if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.Customization{}).Error; err != nil {
		return storageError("delete customizations", err)
	}
	if len(inputs) == 0 {
		return nil
	}

	rows := make([]models.Customization, 0, len(inputs))
	for _, in := range inputs {
		adjustments := make([]decimal.Decimal, 0, len(in.PriceAdjustment))
		for _, adj := range in.PriceAdjustment {
			adjustments = append(adjustments, money(adj))
		}
		rows = append(rows, models.Customization{
			MenuItemID:      menuItemID,
			Type:            in.Type,
			Options:         in.Options,
			PriceAdjustment: adjustments,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return storageError("create customizations", err)
	}
	return nil
}

// checkCustomizations enforces that every option has exactly one price
// adjustment.
func checkCustomizations(inputs []CustomizationInput) error {
	for i, c := range inputs {
		if len(c.Options) != len(c.PriceAdjustment) {
			return ValidationError{
				Field: fmt.Sprintf("customizations[%d].priceAdjustment", i),
				Message: fmt.Sprintf("has %d entries but options has %d",
					len(c.PriceAdjustment), len(c.Options)),
			}
		}
	}
	return nil
}

func writeError(op, name string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ConflictError{Message: fmt.Sprintf("menu item %q already exists", name)}
	}
	return storageError(op, err)
}

func customizationsByID(db *gorm.DB) *gorm.DB {
	return db.Order("customizations.id ASC")
}
