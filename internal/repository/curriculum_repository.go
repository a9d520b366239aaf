package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

// CurriculumRepository owns every write to the module/lesson tree and to the
// rows hanging off a course. Reconciliation and cascade deletion both run
// through it so the ownership walk is declared in one place.
type CurriculumRepository struct {
	DB *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{DB: db}
}

// InTx runs fn against a repository bound to a single transaction.
func (r *CurriculumRepository) InTx(fn func(tx *CurriculumRepository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&CurriculumRepository{DB: tx})
	})
}

func (r *CurriculumRepository) ModulesByCourse(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&modules).Error
	return modules, err
}

func (r *CurriculumRepository) LessonsByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).
		Order("position ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *CurriculumRepository) CreateModule(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *CurriculumRepository) UpdateModule(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *CurriculumRepository) CreateLesson(l *model.Lesson) error {
	return r.DB.Create(l).Error
}

func (r *CurriculumRepository) UpdateLesson(l *model.Lesson) error {
	return r.DB.Save(l).Error
}

func (r *CurriculumRepository) DeleteModules(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Delete(&model.CourseModule{}, ids).Error
}

func (r *CurriculumRepository) DeleteLessons(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Delete(&model.Lesson{}, ids).Error
}

func (r *CurriculumRepository) DeleteCompletionsByLessons(lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	return r.DB.Where("lesson_id IN ?", lessonIDs).
		Delete(&model.LessonCompletion{}).Error
}

// The ByCourse/ByModules deletes below back the course cascade, which is a
// full purge: rows are removed for good, not soft-deleted. In particular the
// course row must actually go away so its slug clears the unique index and
// stays usable for a new course.

func (r *CurriculumRepository) DeleteCompletionsByCourse(courseID uint) error {
	return r.DB.Unscoped().Where("course_id = ?", courseID).
		Delete(&model.LessonCompletion{}).Error
}

func (r *CurriculumRepository) DeleteEnrollmentsByCourse(courseID uint) error {
	return r.DB.Unscoped().Where("course_id = ?", courseID).
		Delete(&model.Enrollment{}).Error
}

func (r *CurriculumRepository) DeleteBookmarksByCourse(courseID uint) error {
	return r.DB.Unscoped().Where("course_id = ?", courseID).
		Delete(&model.Bookmark{}).Error
}

func (r *CurriculumRepository) DeleteLessonsByModules(moduleIDs []uint) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	return r.DB.Unscoped().Where("module_id IN ?", moduleIDs).
		Delete(&model.Lesson{}).Error
}

func (r *CurriculumRepository) DeleteModulesByCourse(courseID uint) error {
	return r.DB.Unscoped().Where("course_id = ?", courseID).
		Delete(&model.CourseModule{}).Error
}

func (r *CurriculumRepository) DeleteCourse(courseID uint) error {
	return r.DB.Unscoped().Delete(&model.Course{}, courseID).Error
}
