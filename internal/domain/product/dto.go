package product

type CreateProductRequest struct {
	Name           string   `json:"name" binding:"required,min=2,max=160"`
	Slug           string   `json:"slug" binding:"omitempty,max=180"`
	Description    string   `json:"description" binding:"omitempty,max=8000"`
	Category       string   `json:"category" binding:"required,max=60"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	CompareAtPrice *float64 `json:"compare_at_price" binding:"omitempty,gt=0"`
	Stock          int      `json:"stock" binding:"gte=0"`
	Images         []string `json:"images" binding:"omitempty,max=10,dive,max=500"`
}

type UpdateProductRequest struct {
	Name           *string   `json:"name" binding:"omitempty,min=2,max=160"`
	Slug           *string   `json:"slug" binding:"omitempty,max=180"`
	Description    *string   `json:"description" binding:"omitempty,max=8000"`
	Category       *string   `json:"category" binding:"omitempty,max=60"`
	Price          *float64  `json:"price" binding:"omitempty,gt=0"`
	CompareAtPrice *float64  `json:"compare_at_price" binding:"omitempty,gte=0"`
	Stock          *int      `json:"stock" binding:"omitempty,gte=0"`
	Images         *[]string `json:"images" binding:"omitempty,max=10"`
	IsActive       *bool     `json:"is_active"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortName      Sort = "name"
)

type ListFilter struct {
	Category        string
	Query           string
	MinPrice        *float64
	MaxPrice        *float64
	Sort            Sort
	IncludeInactive bool
}
