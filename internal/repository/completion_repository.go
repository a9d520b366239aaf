package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

func (r *CompletionRepository) Find(studentID, lessonID uint) (*model.LessonCompletion, error) {
	var completion model.LessonCompletion
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		First(&completion).Error
	return &completion, err
}

func (r *CompletionRepository) Create(completion *model.LessonCompletion) error {
	return r.DB.Create(completion).Error
}

func (r *CompletionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LessonCompletion{}, id).Error
}

func (r *CompletionRepository) ListByStudentAndCourse(studentID, courseID uint) ([]model.LessonCompletion, error) {
	var completions []model.LessonCompletion
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Find(&completions).Error
	return completions, err
}

// ListByStudent returns the completion history, most recent first.
func (r *CompletionRepository) ListByStudent(studentID uint, limit int) ([]model.LessonCompletion, error) {
	q := r.DB.
		Preload("Lesson").
		Preload("Course").
		Preload("Course.Category").
		Where("student_id = ?", studentID).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var completions []model.LessonCompletion
	err := q.Find(&completions).Error
	return completions, err
}
