package classes

type CreateClassRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Description string  `json:"description" binding:"omitempty,max=4000"`
	Category    string  `json:"category" binding:"required,max=60"`
	TrainerID   int64   `json:"trainer_id"`
	DayOfWeek   *int    `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,max=500"`
}

type UpdateClassRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	Category    *string  `json:"category" binding:"omitempty,max=60"`
	TrainerID   *int64   `json:"trainer_id"`
	DayOfWeek   *int     `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Capacity    *int     `json:"capacity" binding:"omitempty,gt=0"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=500"`
	IsActive    *bool    `json:"is_active"`
}

type ListFilter struct {
	Category  string
	DayOfWeek *int
	TrainerID int64
	// IncludeInactive is only honoured for staff listings.
	IncludeInactive bool
}

// Actor is the authenticated caller performing a write.
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }
