package database

import (
	"fmt"
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.InstructorProfile{},
		&model.Category{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.Bookmark{},
		&model.InstructorFollow{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a starter category set so the catalog filters have something to
	// bind to on a fresh install.
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []model.Category{
			{Name: "Programming", Slug: "programming", Color: "#2563eb", Icon: "code"},
			{Name: "Design", Slug: "design", Color: "#db2777", Icon: "palette"},
			{Name: "Business", Slug: "business", Color: "#059669", Icon: "briefcase"},
			{Name: "Marketing", Slug: "marketing", Color: "#d97706", Icon: "megaphone"},
			{Name: "Music", Slug: "music", Color: "#7c3aed", Icon: "music"},
			{Name: "Photography", Slug: "photography", Color: "#0891b2", Icon: "camera"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	return db, nil
}
