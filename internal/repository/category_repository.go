package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("slug = ?", slug).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}
