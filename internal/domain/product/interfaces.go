package product

import (
	"context"

	"fitzone/internal/pkg/pagination"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
	List(ctx context.Context, f ListFilter, p pagination.Params) ([]Product, int64, error)
}
