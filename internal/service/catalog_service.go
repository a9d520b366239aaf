package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService serves the public storefront: course listings, search,
// categories and course details.
type CatalogService struct {
	CourseRepo     *repository.CourseRepository
	CategoryRepo   *repository.CategoryRepository
	InstructorRepo *repository.InstructorRepository
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	instructorRepo *repository.InstructorRepository,
) *CatalogService {
	return &CatalogService{
		CourseRepo:     courseRepo,
		CategoryRepo:   categoryRepo,
		InstructorRepo: instructorRepo,
	}
}

func (s *CatalogService) SearchCourses(filters model.CourseFilters, sort string) ([]model.Course, error) {
	return s.CourseRepo.List(filters, sort)
}

func (s *CatalogService) FeaturedCourses(limit int) ([]model.Course, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.CourseRepo.ListFeatured(limit)
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.List()
}

func (s *CatalogService) CoursesByCategory(categorySlug string) ([]model.Course, error) {
	if _, err := s.CategoryRepo.FindBySlug(categorySlug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.CourseRepo.List(model.CourseFilters{CategorySlugs: []string{categorySlug}}, "")
}

// CourseDetailStore is the slice of the course repository the detail page
// needs. Satisfied by *repository.CourseRepository.
type CourseDetailStore interface {
	FindBySlug(slug string) (*model.Course, error)
}

// InstructorLookup resolves a viewer's teaching profile. Satisfied by
// *repository.InstructorRepository.
type InstructorLookup interface {
	FindByUserID(userID uint) (*model.InstructorProfile, error)
}

// GetCourseBySlug returns the course detail with its full curriculum.
// Unpublished courses are only visible to their creator.
func (s *CatalogService) GetCourseBySlug(slug string, viewerUserID uint) (*model.Course, error) {
	return courseForViewer(s.CourseRepo, s.InstructorRepo, slug, viewerUserID)
}

// courseForViewer hides unpublished courses from everyone but the creator:
// anonymous viewers (id 0), students without a teaching profile, and other
// instructors all get a not-found, indistinguishable from a missing course.
func courseForViewer(courses CourseDetailStore, instructors InstructorLookup, slug string, viewerUserID uint) (*model.Course, error) {
	course, err := courses.FindBySlug(slug)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if !course.Published {
		if viewerUserID == 0 {
			return nil, util.ErrCourseNotFound
		}
		instructor, err := instructors.FindByUserID(viewerUserID)
		if err != nil || instructor.ID != course.InstructorID {
			return nil, util.ErrCourseNotFound
		}
	}
	return course, nil
}

// GetInstructorPage returns an instructor's public profile with published
// courses and follower count.
type InstructorPage struct {
	Instructor model.InstructorProfile `json:"instructor"`
	Courses    []model.Course          `json:"courses"`
	Followers  int64                   `json:"followers"`
}

func (s *CatalogService) GetInstructorPage(instructorID uint) (*InstructorPage, error) {
	instructor, err := s.InstructorRepo.FindByID(instructorID)
	if err != nil {
		return nil, util.ErrInstructorNotFound
	}

	courses, err := s.CourseRepo.List(model.CourseFilters{InstructorID: instructor.ID}, model.SortNewest)
	if err != nil {
		return nil, err
	}

	followers, err := s.InstructorRepo.CountFollowers(instructor.ID)
	if err != nil {
		return nil, err
	}

	return &InstructorPage{
		Instructor: *instructor,
		Courses:    courses,
		Followers:  followers,
	}, nil
}
