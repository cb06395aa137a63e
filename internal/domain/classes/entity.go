package classes

import "time"

type FitnessClass struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:60;index" json:"category"`
	TrainerID   int64     `gorm:"not null;index" json:"trainer_id"`
	DayOfWeek   int       `gorm:"not null;index" json:"day_of_week"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FitnessClass) TableName() string { return "fitness_classes" }

// Weekday maps DayOfWeek (0 = Sunday) to time.Weekday.
func (c *FitnessClass) Weekday() time.Weekday {
	return time.Weekday(c.DayOfWeek)
}
