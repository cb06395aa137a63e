package main

import (
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitzone/internal/app"
	"fitzone/internal/config"
	"fitzone/internal/database"
	"fitzone/internal/domain/auth"
	"fitzone/internal/domain/classes"
	"fitzone/internal/domain/product"
	"fitzone/internal/domain/sitecontent"
	"fitzone/internal/pkg/logger"
)

// Seed data is inserted once; rerunning keeps existing rows.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := app.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		trainers, err := seedUsers(tx)
		if err != nil {
			return err
		}
		if err := seedClasses(tx, trainers); err != nil {
			return err
		}
		if err := seedProducts(tx); err != nil {
			return err
		}
		return seedSiteContent(tx)
	})
	if err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	log.Info("seed completed")
}

func seedUsers(tx *gorm.DB) ([]auth.User, error) {
	hash := func(p string) string {
		h, err := auth.HashPassword(p)
		if err != nil {
			panic(err)
		}
		return h
	}

	users := []auth.User{
		{Name: "FitZone Admin", Email: "admin@fitzone.in", PasswordHash: hash("admin123"), Role: auth.RoleAdmin, IsActive: true},
		{Name: "Arjun Mehta", Email: "arjun@fitzone.in", PasswordHash: hash("trainer123"), Role: auth.RoleTrainer, IsActive: true,
			Specialization: "Strength & Conditioning", Bio: "Certified strength coach, 8 years on the floor."},
		{Name: "Kavya Iyer", Email: "kavya@fitzone.in", PasswordHash: hash("trainer123"), Role: auth.RoleTrainer, IsActive: true,
			Specialization: "Yoga", Bio: "Hatha and vinyasa teacher."},
		{Name: "Rohan Das", Email: "rohan@example.com", PasswordHash: hash("member123"), Role: auth.RoleMember, IsActive: true},
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&users).Error; err != nil {
		return nil, err
	}

	var trainers []auth.User
	err := tx.Where("role = ?", auth.RoleTrainer).Order("id").Find(&trainers).Error
	return trainers, err
}

func seedClasses(tx *gorm.DB, trainers []auth.User) error {
	var n int64
	if err := tx.Model(&classes.FitnessClass{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 || len(trainers) < 2 {
		return nil
	}

	strength, yoga := trainers[0].ID, trainers[1].ID
	list := []classes.FitnessClass{
		{Name: "Morning Strength", Category: "strength", TrainerID: strength, DayOfWeek: 1, StartTime: "07:00", EndTime: "08:00", Capacity: 15, Price: 0, IsActive: true},
		{Name: "HIIT Blast", Category: "hiit", TrainerID: strength, DayOfWeek: 3, StartTime: "18:30", EndTime: "19:15", Capacity: 20, Price: 0, IsActive: true},
		{Name: "Power Yoga", Category: "yoga", TrainerID: yoga, DayOfWeek: 2, StartTime: "06:30", EndTime: "07:30", Capacity: 12, Price: 0, IsActive: true},
		{Name: "Weekend Flow", Category: "yoga", TrainerID: yoga, DayOfWeek: 6, StartTime: "09:00", EndTime: "10:15", Capacity: 25, Price: 199, IsActive: true},
	}
	return tx.Create(&list).Error
}

func seedProducts(tx *gorm.DB) error {
	mrp := 2999.0
	list := []product.Product{
		{Name: "Whey Protein 1kg", Slug: "whey-protein-1kg", Category: "supplements", Price: 2499, CompareAtPrice: &mrp, Stock: 40,
			Description: "24g protein per scoop, chocolate.", Images: datatypes.JSONSlice[string]{}, IsActive: true},
		{Name: "Yoga Mat", Slug: "yoga-mat", Category: "gear", Price: 799, Stock: 25, Images: datatypes.JSONSlice[string]{}, IsActive: true},
		{Name: "Shaker Bottle", Slug: "shaker-bottle", Category: "gear", Price: 299, Stock: 60, Images: datatypes.JSONSlice[string]{}, IsActive: true},
		{Name: "FitZone Tee", Slug: "fitzone-tee", Category: "apparel", Price: 599, Stock: 30, Images: datatypes.JSONSlice[string]{}, IsActive: true},
	}
	return tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&list).Error
}

func seedSiteContent(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&sitecontent.TeamMember{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	team := []sitecontent.TeamMember{
		{Name: "Neha Kapoor", Role: "Founder & Head Coach", DisplayOrder: 1, IsActive: true,
			SocialLinks: datatypes.NewJSONType(map[string]string{"instagram": "https://instagram.com/fitzone"})},
		{Name: "Arjun Mehta", Role: "Strength Coach", DisplayOrder: 2, IsActive: true,
			SocialLinks: datatypes.NewJSONType(map[string]string{})},
	}
	if err := tx.Create(&team).Error; err != nil {
		return err
	}

	testimonials := []sitecontent.Testimonial{
		{Name: "Rohan Das", Role: "Member since 2023", Content: "Lost 12kg in six months. The coaches actually track your progress.", Rating: 5, DisplayOrder: 1, IsActive: true},
		{Name: "Sneha R", Role: "Yoga regular", Content: "Morning yoga batches are the best part of my day.", Rating: 5, DisplayOrder: 2, IsActive: true},
	}
	return tx.Create(&testimonials).Error
}
