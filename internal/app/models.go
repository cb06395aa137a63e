package app

import (
	"gorm.io/gorm"

	"fitzone/internal/domain/auth"
	"fitzone/internal/domain/booking"
	"fitzone/internal/domain/cart"
	"fitzone/internal/domain/classes"
	"fitzone/internal/domain/notification"
	"fitzone/internal/domain/order"
	"fitzone/internal/domain/payment"
	"fitzone/internal/domain/product"
	"fitzone/internal/domain/sitecontent"
	"fitzone/internal/domain/upload"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&auth.User{},
		&classes.FitnessClass{},
		&booking.RecurringBooking{},
		&booking.Booking{},
		&sitecontent.TeamMember{},
		&sitecontent.Testimonial{},
		&product.Product{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&payment.Transaction{},
		&upload.Upload{},
		&notification.Notification{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
