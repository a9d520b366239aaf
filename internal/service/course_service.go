package service

import (
	"errors"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CreateCourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description" binding:"required"`
	CategorySlug string `json:"category" binding:"required"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"imageUrl"`
}

type UpdateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CategorySlug string `json:"category"`
	Price        *int64 `json:"price"`
	ImageURL     string `json:"imageUrl"`
}

// CourseGraphStore is the slice of the curriculum repository the cascade
// delete walks. Satisfied by *repository.CurriculumRepository.
type CourseGraphStore interface {
	ModulesByCourse(courseID uint) ([]model.CourseModule, error)
	DeleteCompletionsByCourse(courseID uint) error
	DeleteEnrollmentsByCourse(courseID uint) error
	DeleteBookmarksByCourse(courseID uint) error
	DeleteLessonsByModules(moduleIDs []uint) error
	DeleteModulesByCourse(courseID uint) error
	DeleteCourse(courseID uint) error
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	CategoryRepo   *repository.CategoryRepository
	InstructorRepo *repository.InstructorRepository
	CurriculumRepo *repository.CurriculumRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	instructorRepo *repository.InstructorRepository,
	curriculumRepo *repository.CurriculumRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		CategoryRepo:   categoryRepo,
		InstructorRepo: instructorRepo,
		CurriculumRepo: curriculumRepo,
	}
}

// resolveCategory finds the category by slug, creating it on the fly when
// unknown so instructors can file a course under a fresh category.
func (s *CourseService) resolveCategory(slug string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindBySlug(slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := slug
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	category = &model.Category{Name: name, Slug: slug}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CourseService) CreateCourse(userID uint, req CreateCourseRequest) (*model.Course, error) {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}

	taken, err := s.CourseRepo.SlugExists(req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	category, err := s.resolveCategory(req.CategorySlug)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Published:    false,
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// requireOwnership loads a course and checks it belongs to the caller.
func (s *CourseService) requireOwnership(userID, courseID uint) (*model.Course, error) {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.InstructorID != instructor.ID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(userID, courseID uint, req UpdateCourseRequest) error {
	if _, err := s.requireOwnership(userID, courseID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.CategorySlug != "" {
		category, err := s.resolveCategory(req.CategorySlug)
		if err != nil {
			return err
		}
		updates["category_id"] = category.ID
	}

	if len(updates) == 0 {
		return nil
	}
	return s.CourseRepo.Updates(courseID, updates)
}

func (s *CourseService) SetPublished(userID, courseID uint, published bool) error {
	if _, err := s.requireOwnership(userID, courseID); err != nil {
		return err
	}
	return s.CourseRepo.Updates(courseID, map[string]interface{}{"published": published})
}

// DeleteCourse removes the course and everything hanging off it. The walk is
// declared once, runs in one transaction, and covers completions,
// enrollments, bookmarks, lessons, modules, then the course itself.
func (s *CourseService) DeleteCourse(userID, courseID uint) error {
	if _, err := s.requireOwnership(userID, courseID); err != nil {
		return err
	}
	return s.CurriculumRepo.InTx(func(tx *repository.CurriculumRepository) error {
		return deleteCourseGraph(tx, courseID)
	})
}

func deleteCourseGraph(store CourseGraphStore, courseID uint) error {
	if err := store.DeleteCompletionsByCourse(courseID); err != nil {
		return err
	}
	if err := store.DeleteEnrollmentsByCourse(courseID); err != nil {
		return err
	}
	if err := store.DeleteBookmarksByCourse(courseID); err != nil {
		return err
	}

	modules, err := store.ModulesByCourse(courseID)
	if err != nil {
		return err
	}
	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}
	if err := store.DeleteLessonsByModules(moduleIDs); err != nil {
		return err
	}
	if err := store.DeleteModulesByCourse(courseID); err != nil {
		return err
	}
	return store.DeleteCourse(courseID)
}

func (s *CourseService) ListOwnCourses(userID uint) ([]model.Course, error) {
	instructor, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}
	return s.CourseRepo.ListByInstructor(instructor.ID)
}

// GetCourseForEditing returns the full tree regardless of publish state, for
// the creator only.
func (s *CourseService) GetCourseForEditing(userID, courseID uint) (*model.Course, error) {
	if _, err := s.requireOwnership(userID, courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindByIDWithCurriculum(courseID)
}
