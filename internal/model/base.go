package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewRefKey returns a stable reference key for curriculum entries. Keys are
// assigned once at creation and never regenerated, so repeated curriculum
// saves leave unchanged items untouched.
func NewRefKey() string {
	return uuid.New().String()
}
