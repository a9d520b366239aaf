package model

import "time"

// LessonCompletion marks a student finished a lesson. ModuleID and CourseID
// are stored redundantly so progress and history queries avoid joins through
// the curriculum tree.
type LessonCompletion struct {
	BaseModel
	StudentID   uint      `gorm:"index;not null" json:"studentId"`
	LessonID    uint      `gorm:"index;not null" json:"lessonId"`
	ModuleID    uint      `gorm:"index;not null" json:"moduleId"`
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	CompletedAt time.Time `json:"completedAt"`

	Lesson Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
