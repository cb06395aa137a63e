package classes

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitzone/internal/pkg/pagination"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *FitnessClass) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*FitnessClass, error) {
	var c FitnessClass
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(ctx context.Context, c *FitnessClass) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repository) List(ctx context.Context, f ListFilter, p pagination.Params) ([]FitnessClass, int64, error) {
	q := r.db.WithContext(ctx).Model(&FitnessClass{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.DayOfWeek != nil {
		q = q.Where("day_of_week = ?", *f.DayOfWeek)
	}
	if f.TrainerID > 0 {
		q = q.Where("trainer_id = ?", f.TrainerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []FitnessClass
	err := q.Order("day_of_week ASC, start_time ASC, id ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&out).Error
	return out, total, err
}

// CountActive is used by the admin dashboard.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&FitnessClass{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
