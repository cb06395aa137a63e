package order

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitzone/internal/domain/cart"
	"fitzone/internal/domain/product"
	"fitzone/internal/pkg/pagination"
)

// BuildFunc turns the locked cart into an order. It runs inside the
// checkout transaction before stock moves.
type BuildFunc func(items []cart.CartItem) (*Order, error)

// MutateFunc changes a locked order. Returning an error rolls back.
type MutateFunc func(tx *gorm.DB, o *Order) error

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PlaceFromCart reserves stock for every cart line, stores the order built
// by build and empties the cart, all in one transaction.
func (r *Repository) PlaceFromCart(ctx context.Context, userID int64, build BuildFunc) (*Order, error) {
	var placed *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := cart.ListItems(tx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		o, err := build(items)
		if err != nil {
			return err
		}

		for _, it := range o.Items {
			p, err := product.AdjustStock(tx, it.ProductID, -it.Quantity)
			if err != nil {
				if errors.Is(err, product.ErrInsufficientStock) {
					return &StockError{ProductID: it.ProductID, Name: it.Name, Available: availableOf(items, it.ProductID)}
				}
				if errors.Is(err, product.ErrNotFound) {
					return ErrProductUnavailable
				}
				return err
			}
			if !p.IsActive {
				return ErrProductUnavailable
			}
		}

		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if err := cart.ClearItems(tx, userID); err != nil {
			return err
		}
		placed = o
		return nil
	})
	return placed, err
}

func availableOf(items []cart.CartItem, productID int64) int {
	for _, it := range items {
		if it.ProductID == productID && it.Product != nil {
			return it.Product.Stock
		}
	}
	return 0
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).Where("gateway_order_id = ?", gatewayOrderID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Mutate locks the order row, applies fn and saves the result.
func (r *Repository) Mutate(ctx context.Context, id int64, fn MutateFunc) (*Order, error) {
	return r.mutate(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id) }, fn)
}

func (r *Repository) MutateByGatewayOrderID(ctx context.Context, gatewayOrderID string, fn MutateFunc) (*Order, error) {
	return r.mutate(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("gateway_order_id = ?", gatewayOrderID) }, fn)
}

func (r *Repository) mutate(ctx context.Context, where func(*gorm.DB) *gorm.DB, fn MutateFunc) (*Order, error) {
	var out *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if err := where(q).First(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Order("id ASC").Find(&o.Items).Error; err != nil {
			return err
		}
		if err := fn(tx, &o); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&o).Error; err != nil {
			return err
		}
		out = &o
		return nil
	})
	return out, err
}

// RestoreStock puts the order's quantities back on the shelf.
func RestoreStock(tx *gorm.DB, o *Order) error {
	for _, it := range o.Items {
		if _, err := product.AdjustStock(tx, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f ListFilter, p pagination.Params) ([]Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&Order{})
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Order
	err := q.Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *Repository) CountActiveByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Order{}).
		Where("user_id = ? AND status <> ?", userID, StatusCancelled).
		Count(&n).Error
	return n, err
}

// StaleOnlineIDs lists unpaid online orders created before cutoff.
func (r *Repository) StaleOnlineIDs(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&Order{}).
		Where("status = ? AND payment_method = ? AND payment_status <> ? AND created_at < ?",
			StatusPending, PaymentOnline, PaymentPaid, cutoff).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Status Status
		N      int64
	}
	if err := r.db.WithContext(ctx).Model(&Order{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	s := &Stats{ByStatus: make(map[Status]int64, len(rows))}
	for _, row := range rows {
		s.ByStatus[row.Status] = row.N
	}

	if err := r.db.WithContext(ctx).Model(&Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("payment_status = ?", PaymentPaid).
		Scan(&s.Revenue).Error; err != nil {
		return nil, err
	}
	return s, nil
}
