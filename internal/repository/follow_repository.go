package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

func (r *FollowRepository) Find(studentID, instructorID uint) (*model.InstructorFollow, error) {
	var follow model.InstructorFollow
	err := r.DB.Where("student_id = ? AND instructor_id = ?", studentID, instructorID).
		First(&follow).Error
	return &follow, err
}

func (r *FollowRepository) Create(follow *model.InstructorFollow) error {
	return r.DB.Create(follow).Error
}

func (r *FollowRepository) Delete(id uint) error {
	return r.DB.Delete(&model.InstructorFollow{}, id).Error
}

func (r *FollowRepository) ListByStudent(studentID uint) ([]model.InstructorFollow, error) {
	var follows []model.InstructorFollow
	err := r.DB.Where("student_id = ?", studentID).Find(&follows).Error
	return follows, err
}
