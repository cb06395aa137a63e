package auth

import (
	"context"
	"time"

	"fitzone/internal/pkg/pagination"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, f UserFilter, p pagination.Params) ([]User, int64, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	TTL() time.Duration
}
