package upload

import (
	"context"

	"fitzone/internal/pkg/pagination"
)

type uploadStore interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID int64, p pagination.Params) ([]Upload, int64, error)
}
