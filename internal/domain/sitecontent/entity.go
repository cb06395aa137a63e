package sitecontent

import (
	"time"

	"gorm.io/datatypes"
)

type TeamMember struct {
	ID           int64                                 `gorm:"primaryKey" json:"id"`
	Name         string                                `gorm:"size:120;not null" json:"name"`
	Role         string                                `gorm:"size:120;not null" json:"role"`
	Bio          string                                `gorm:"type:text" json:"bio,omitempty"`
	ImageURL     string                                `gorm:"size:500" json:"image_url,omitempty"`
	SocialLinks  datatypes.JSONType[map[string]string] `json:"social_links"`
	DisplayOrder int                                   `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool                                  `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time                             `json:"created_at"`
	UpdatedAt    time.Time                             `json:"updated_at"`
}

func (TeamMember) TableName() string { return "team_members" }

type Testimonial struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Role         string    `gorm:"size:120" json:"role,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Rating       int       `gorm:"not null;default:5" json:"rating"`
	ImageURL     string    `gorm:"size:500" json:"image_url,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string { return "testimonials" }
