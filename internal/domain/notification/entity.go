package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an inbox entry created from a domain event.
type Notification struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	UserID    int64          `gorm:"not null;index:idx_notifications_user_unread" json:"user_id"`
	Type      string         `gorm:"size:40;not null" json:"type"`
	Title     string         `gorm:"size:160;not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;index:idx_notifications_user_unread" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) MarkAsRead(now time.Time) {
	n.IsRead = true
	n.ReadAt = &now
}
