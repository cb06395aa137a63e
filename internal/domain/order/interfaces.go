package order

import (
	"context"
	"time"

	"fitzone/internal/pkg/pagination"
)

type RepositoryInterface interface {
	PlaceFromCart(ctx context.Context, userID int64, build BuildFunc) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	Mutate(ctx context.Context, id int64, fn MutateFunc) (*Order, error)
	MutateByGatewayOrderID(ctx context.Context, gatewayOrderID string, fn MutateFunc) (*Order, error)
	List(ctx context.Context, f ListFilter, p pagination.Params) ([]Order, int64, error)
	CountActiveByUser(ctx context.Context, userID int64) (int64, error)
	StaleOnlineIDs(ctx context.Context, cutoff time.Time) ([]int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

// CatalogCache is told when checkout or cancellation moved stock.
type CatalogCache interface {
	Invalidate(ctx context.Context)
}
