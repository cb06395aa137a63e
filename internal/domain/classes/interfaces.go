package classes

import (
	"context"

	"fitzone/internal/domain/auth"
	"fitzone/internal/pkg/pagination"
)

type ClassRepositoryInterface interface {
	Create(ctx context.Context, c *FitnessClass) error
	GetByID(ctx context.Context, id int64) (*FitnessClass, error)
	Update(ctx context.Context, c *FitnessClass) error
	List(ctx context.Context, f ListFilter, p pagination.Params) ([]FitnessClass, int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}
