package auth

import "time"

type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:120;not null" json:"name"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Phone          string    `gorm:"size:32" json:"phone,omitempty"`
	Role           Role      `gorm:"size:20;not null;index" json:"role"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	Specialization string    `gorm:"size:120" json:"specialization,omitempty"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
