package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID int64) ([]CartItem, error) {
	return ListItems(r.db.WithContext(ctx), userID)
}

// ListItems loads a user's cart with products. Checkout calls it with its
// own transaction.
func ListItems(db *gorm.DB, userID int64) ([]CartItem, error) {
	var items []CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *Repository) Get(ctx context.Context, userID, productID int64) (*CartItem, error) {
	var item CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Save(ctx context.Context, item *CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Save(item).Error
}

func (r *Repository) Delete(ctx context.Context, userID, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context, userID int64) error {
	return ClearItems(r.db.WithContext(ctx), userID)
}

func ClearItems(db *gorm.DB, userID int64) error {
	return db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}
