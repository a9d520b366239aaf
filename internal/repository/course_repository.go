package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Category").Preload("Instructor").First(&course, id).Error
	return &course, err
}

// FindByIDWithCurriculum loads the full module/lesson tree in client order.
func (r *CourseRepository) FindByIDWithCurriculum(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Instructor").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.position ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Instructor").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.position ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Where("slug = ?", slug).
		First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindBySlugs(slugs []string) ([]model.Course, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var courses []model.Course
	err := r.DB.
		Preload("Category").
		Preload("Instructor").
		Where("slug IN ? AND published = ?", slugs, true).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Updates(id uint, updates map[string]interface{}) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Category").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListFeatured(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Category").
		Preload("Instructor").
		Where("published = ?", true).
		Order("enrollment_count DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// ListRecentByInstructors backs the notification feed: courses published by
// the given instructors, newest first.
func (r *CourseRepository) ListRecentByInstructors(instructorIDs []uint, limit int) ([]model.Course, error) {
	if len(instructorIDs) == 0 {
		return nil, nil
	}
	var courses []model.Course
	err := r.DB.
		Preload("Category").
		Preload("Instructor").
		Where("instructor_id IN ? AND published = ?", instructorIDs, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) IncrementEnrollmentCount(id uint) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", id).
		Update("enrollment_count", gorm.Expr("enrollment_count + 1")).
		Error
}

// List applies catalog filters and sort over published courses. The clause
// set mirrors the storefront search: category, price range, free/paid,
// instructor, and a term matched across title, description, category and
// instructor names.
func (r *CourseRepository) List(filters model.CourseFilters, sort string) ([]model.Course, error) {
	q := r.DB.Model(&model.Course{}).
		Preload("Category").
		Preload("Instructor").
		Where("courses.published = ?", true)

	if len(filters.CategorySlugs) > 0 {
		q = q.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug IN ?", filters.CategorySlugs)
	}

	if filters.InstructorID != 0 {
		q = q.Where("courses.instructor_id = ?", filters.InstructorID)
	}

	if filters.IsFree {
		q = q.Where("courses.price = 0")
	}

	if filters.IsPaid {
		q = q.Where("courses.price > 0")
	}

	if filters.PriceMin != nil {
		q = q.Where("courses.price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		q = q.Where("courses.price <= ?", *filters.PriceMax)
	}

	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		q = q.Joins("JOIN instructor_profiles ON instructor_profiles.id = courses.instructor_id").
			Joins("LEFT JOIN categories AS search_categories ON search_categories.id = courses.category_id").
			Where("courses.title LIKE ? OR courses.description LIKE ? OR search_categories.name LIKE ? OR instructor_profiles.name LIKE ?",
				term, term, term, term)
	}

	switch sort {
	case model.SortNewest:
		q = q.Order("courses.created_at DESC")
	case model.SortOldest:
		q = q.Order("courses.created_at ASC")
	case model.SortPriceLow:
		q = q.Order("courses.price ASC")
	case model.SortPriceHigh:
		q = q.Order("courses.price DESC")
	case model.SortPopular:
		q = q.Order("courses.enrollment_count DESC")
	default:
		q = q.Order("courses.title ASC")
	}

	var courses []model.Course
	err := q.Find(&courses).Error
	return courses, err
}
