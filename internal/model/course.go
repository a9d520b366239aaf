package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	// Price in cents. Zero means free.
	Price           int64  `gorm:"default:0" json:"price"`
	Published       bool   `gorm:"default:false;index" json:"published"`
	ImageURL        string `gorm:"size:255" json:"imageUrl"`
	CategoryID      uint   `gorm:"index" json:"categoryId"`
	InstructorID    uint   `gorm:"index" json:"instructorId"`
	EnrollmentCount int64  `gorm:"default:0" json:"enrollmentCount"`

	Category   Category          `gorm:"foreignKey:CategoryID" json:"category"`
	Instructor InstructorProfile `gorm:"foreignKey:InstructorID" json:"instructor"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is a named, ordered grouping of lessons. A module belongs to
// exactly one course; Position carries the client-submitted order.
type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Key      string `gorm:"size:36;not null" json:"key"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"default:0" json:"position"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint   `gorm:"index;not null" json:"moduleId"`
	Key         string `gorm:"size:36;not null" json:"key"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"size:255;index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:255" json:"videoUrl"`
	EmbedURL    string `gorm:"size:255" json:"embedUrl"`
	Thumbnail   string `gorm:"size:255" json:"thumbnail"`
	// Rich content blocks, stored as a JSON document.
	Content  string `gorm:"type:longtext" json:"content"`
	Duration int    `gorm:"default:0" json:"duration"`
	Position int    `gorm:"default:0" json:"position"`
}

func (Lesson) TableName() string {
	return "lessons"
}
