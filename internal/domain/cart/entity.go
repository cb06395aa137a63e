package cart

import (
	"time"

	"fitzone/internal/domain/product"
)

type CartItem struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1" json:"user_id"`
	ProductID int64            `gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2" json:"product_id"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	Product   *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }

func (i *CartItem) LineTotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}

type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}
