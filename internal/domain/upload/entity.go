package upload

import "time"

type Backend string

const (
	BackendLocal      Backend = "local"
	BackendCloudinary Backend = "cloudinary"
)

// Upload is an image a user stored through the API. Any domain can keep its
// URL; the record only tracks ownership and where the bytes live.
type Upload struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	UserID       int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255)" json:"original_name"`
	Backend      Backend   `gorm:"column:backend;type:varchar(20);not null" json:"backend"`
	PublicID     string    `gorm:"column:public_id;type:varchar(255);not null" json:"public_id"`
	URL          string    `gorm:"column:url;type:text;not null" json:"url"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(64)" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
