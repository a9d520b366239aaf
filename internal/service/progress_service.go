package service

import (
	"errors"
	"math"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	CompletionRepo *repository.CompletionRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewProgressService(
	completionRepo *repository.CompletionRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *ProgressService {
	return &ProgressService{
		CompletionRepo: completionRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// CalculateCourseProgress returns the student's completion percentage for a
// course: round(100 * completed / total). A course with no lessons reports 0
// rather than dividing by zero, and nil module or lesson slices count as
// empty. Pure; recomputed per request, never cached.
func CalculateCourseProgress(modules []model.CourseModule, completions []model.LessonCompletion) int {
	totalLessons := 0
	for _, m := range modules {
		totalLessons += len(m.Lessons)
	}
	if totalLessons == 0 {
		return 0
	}

	completed := make(map[uint]bool, len(completions))
	for _, c := range completions {
		completed[c.LessonID] = true
	}

	completedCount := 0
	for _, m := range modules {
		for _, l := range m.Lessons {
			if completed[l.ID] {
				completedCount++
			}
		}
	}

	return int(math.Round(float64(completedCount) / float64(totalLessons) * 100))
}

type CourseProgress struct {
	CourseID         uint                     `json:"courseId"`
	Percent          int                      `json:"percent"`
	CompletedLessons []model.LessonCompletion `json:"completedLessons"`
}

func (s *ProgressService) GetCourseProgress(studentID, courseID uint) (*CourseProgress, error) {
	course, err := s.CourseRepo.FindByIDWithCurriculum(courseID)
	if err != nil {
		return nil, err
	}

	completions, err := s.CompletionRepo.ListByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseProgress{
		CourseID:         course.ID,
		Percent:          CalculateCourseProgress(course.Modules, completions),
		CompletedLessons: completions,
	}, nil
}

// CompleteLesson records the completion, at most once per (student, lesson)
// pair. The owning module and course are resolved and stored redundantly.
func (s *ProgressService) CompleteLesson(studentID, lessonID uint) (*model.LessonCompletion, error) {
	existing, err := s.CompletionRepo.Find(studentID, lessonID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	own, err := s.LessonRepo.ResolveOwnership(lessonID)
	if err != nil {
		return nil, err
	}

	if _, err := s.EnrollmentRepo.Find(studentID, own.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	completion := &model.LessonCompletion{
		StudentID:   studentID,
		LessonID:    lessonID,
		ModuleID:    own.ModuleID,
		CourseID:    own.CourseID,
		CompletedAt: time.Now(),
	}
	if err := s.CompletionRepo.Create(completion); err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *ProgressService) UncompleteLesson(studentID, lessonID uint) error {
	completion, err := s.CompletionRepo.Find(studentID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.CompletionRepo.Delete(completion.ID)
}

func (s *ProgressService) GetHistory(studentID uint, limit int) ([]model.LessonCompletion, error) {
	return s.CompletionRepo.ListByStudent(studentID, limit)
}

// EnrolledCourse is a my-courses row: the course plus the student's progress.
type EnrolledCourse struct {
	Course   model.Course `json:"course"`
	Progress int          `json:"progress"`
}

func (s *ProgressService) GetEnrolledCourses(studentID uint) ([]EnrolledCourse, error) {
	enrollments, err := s.EnrollmentRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	result := make([]EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.CourseRepo.FindByIDWithCurriculum(e.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		completions, err := s.CompletionRepo.ListByStudentAndCourse(studentID, e.CourseID)
		if err != nil {
			return nil, err
		}

		result = append(result, EnrolledCourse{
			Course:   *course,
			Progress: CalculateCourseProgress(course.Modules, completions),
		})
	}
	return result, nil
}
