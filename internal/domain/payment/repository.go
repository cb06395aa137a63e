package payment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Transaction, error) {
	var t Transaction
	if err := r.db.WithContext(ctx).Where("gateway_order_id = ?", gatewayOrderID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTxNotFound
		}
		return nil, err
	}
	return &t, nil
}

// MarkFailed records a failed attempt unless the transaction is already paid.
func (r *Repository) MarkFailed(ctx context.Context, gatewayOrderID, rawBody, reason string) error {
	return r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("gateway_order_id = ? AND status <> ?", gatewayOrderID, TxPaid).
		Updates(map[string]interface{}{
			"status":         TxFailed,
			"raw_body":       rawBody,
			"failure_reason": reason,
		}).Error
}

func (r *Repository) MarkPaidIdempotent(ctx context.Context, gatewayOrderID, paymentID, rawBody string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("gateway_order_id = ?", gatewayOrderID).First(&t).Error; err != nil {
			return err
		}
		if t.Status == TxPaid {
			changed = false
			return nil
		}
		res := tx.Model(&Transaction{}).Where("gateway_order_id = ?", gatewayOrderID).Updates(map[string]interface{}{
			"status":             TxPaid,
			"gateway_payment_id": paymentID,
			"raw_body":           rawBody,
			"failure_reason":     "",
			"paid_at":            paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}
