package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

func (r *BookmarkRepository) Find(studentID, courseID uint) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&bookmark).Error
	return &bookmark, err
}

func (r *BookmarkRepository) Create(bookmark *model.Bookmark) error {
	return r.DB.Create(bookmark).Error
}

func (r *BookmarkRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Bookmark{}, id).Error
}

func (r *BookmarkRepository) ListByStudent(studentID uint) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.DB.
		Preload("Course").
		Preload("Course.Category").
		Preload("Course.Instructor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}
