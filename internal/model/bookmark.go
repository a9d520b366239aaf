package model

// Bookmark is a student-course join row with toggle semantics.
type Bookmark struct {
	BaseModel
	StudentID uint `gorm:"index;not null" json:"studentId"`
	CourseID  uint `gorm:"index;not null" json:"courseId"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
