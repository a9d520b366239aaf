package model

// InstructorProfile is the public teaching profile of a user. A user gains
// the instructor role when the profile is created.
type InstructorProfile struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Bio      string `gorm:"type:text" json:"bio"`
	PhotoURL string `gorm:"size:255" json:"photoUrl"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (InstructorProfile) TableName() string {
	return "instructor_profiles"
}

// InstructorFollow links a student to an instructor. Uniqueness per pair is
// enforced by an existence check before insert, not by a DB constraint.
type InstructorFollow struct {
	BaseModel
	StudentID    uint `gorm:"index;not null" json:"studentId"`
	InstructorID uint `gorm:"index;not null" json:"instructorId"`
}

func (InstructorFollow) TableName() string {
	return "instructor_follows"
}
