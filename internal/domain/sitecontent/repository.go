package sitecontent

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository stores both collections. T is TeamMember or Testimonial.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) List(ctx context.Context, includeInactive bool) ([]T, error) {
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []T
	err := q.Order("display_order ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *Repository[T]) Save(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	var zero T
	res := r.db.WithContext(ctx).Delete(&zero, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
