package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

// Ownership resolves a lesson's owning module and course in one query.
type Ownership struct {
	LessonID uint
	ModuleID uint
	CourseID uint
}

func (r *LessonRepository) ResolveOwnership(lessonID uint) (*Ownership, error) {
	var own Ownership
	err := r.DB.Table("lessons").
		Select("lessons.id AS lesson_id, lessons.module_id AS module_id, course_modules.course_id AS course_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lessons.id = ? AND lessons.deleted_at IS NULL", lessonID).
		Scan(&own).Error
	if err != nil {
		return nil, err
	}
	if own.LessonID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &own, nil
}
