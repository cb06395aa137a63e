package cart

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"omitempty,gte=1,lte=100"`
}

type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0,lte=100"`
}
