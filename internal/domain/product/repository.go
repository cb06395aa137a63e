package product

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitzone/internal/pkg/dberr"
	"fitzone/internal/pkg/pagination"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*Product, error) {
	out := make(map[int64]*Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// AdjustStock adds delta to stock inside tx, refusing to go below zero.
func AdjustStock(tx *gorm.DB, id int64, delta int) (*Product, error) {
	var p Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Stock+delta < 0 {
		return nil, ErrInsufficientStock
	}
	if err := tx.Model(&p).UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
		return nil, err
	}
	p.Stock += delta
	return &p, nil
}

func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	var out *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := AdjustStock(tx, id, delta)
		out = p
		return err
	})
	return out, err
}

func (r *Repository) List(ctx context.Context, f ListFilter, p pagination.Params) ([]Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&Product{})
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", strings.ToLower(f.Category))
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	switch f.Sort {
	case SortPriceAsc:
		order = "price ASC, id ASC"
	case SortPriceDesc:
		order = "price DESC, id ASC"
	case SortName:
		order = "name ASC, id ASC"
	}

	var out []Product
	err := q.Order(order).Offset(p.Offset()).Limit(p.Limit).Find(&out).Error
	return out, total, err
}
