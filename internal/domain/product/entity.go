package product

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID             int64                       `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"size:160;not null" json:"name"`
	Slug           string                      `gorm:"size:180;not null;uniqueIndex" json:"slug"`
	Description    string                      `gorm:"type:text" json:"description,omitempty"`
	Category       string                      `gorm:"size:60;index" json:"category"`
	Price          float64                     `gorm:"not null" json:"price"`
	CompareAtPrice *float64                    `json:"compare_at_price,omitempty"`
	Stock          int                         `gorm:"not null" json:"stock"`
	Images         datatypes.JSONSlice[string] `json:"images"`
	IsActive       bool                        `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) InStock() bool {
	return p.IsActive && p.Stock > 0
}
