package model

// Enrollment grants a student access to a course. Rows are only created by
// the payment webhook (or directly for free courses), at most one per
// (student, course) pair.
type Enrollment struct {
	BaseModel
	StudentID uint   `gorm:"index;not null" json:"studentId"`
	CourseID  uint   `gorm:"index;not null" json:"courseId"`
	PaymentID string `gorm:"size:255" json:"paymentId"`
	// Amount paid in cents.
	Amount int64 `gorm:"default:0" json:"amount"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
