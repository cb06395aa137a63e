package cart

import (
	"context"

	"fitzone/internal/domain/product"
)

type RepositoryInterface interface {
	List(ctx context.Context, userID int64) ([]CartItem, error)
	Get(ctx context.Context, userID, productID int64) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}
