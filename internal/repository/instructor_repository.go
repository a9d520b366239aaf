package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type InstructorRepository struct {
	DB *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{DB: db}
}

func (r *InstructorRepository) Create(profile *model.InstructorProfile) error {
	return r.DB.Create(profile).Error
}

func (r *InstructorRepository) FindByID(id uint) (*model.InstructorProfile, error) {
	var profile model.InstructorProfile
	err := r.DB.First(&profile, id).Error
	return &profile, err
}

func (r *InstructorRepository) FindByUserID(userID uint) (*model.InstructorProfile, error) {
	var profile model.InstructorProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *InstructorRepository) Update(profile *model.InstructorProfile) error {
	return r.DB.Save(profile).Error
}

func (r *InstructorRepository) CountFollowers(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.InstructorFollow{}).
		Where("instructor_id = ?", instructorID).
		Count(&count).Error
	return count, err
}
