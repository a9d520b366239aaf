package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// BookmarkStore is the slice of the bookmark repository the toggle needs.
// Satisfied by *repository.BookmarkRepository.
type BookmarkStore interface {
	Find(studentID, courseID uint) (*model.Bookmark, error)
	Create(bookmark *model.Bookmark) error
	Delete(id uint) error
}

type BookmarkService struct {
	BookmarkRepo *repository.BookmarkRepository
	CourseRepo   *repository.CourseRepository
}

func NewBookmarkService(
	bookmarkRepo *repository.BookmarkRepository,
	courseRepo *repository.CourseRepository,
) *BookmarkService {
	return &BookmarkService{
		BookmarkRepo: bookmarkRepo,
		CourseRepo:   courseRepo,
	}
}

// Toggle flips the bookmark state for a course and returns the new state.
func (s *BookmarkService) Toggle(studentID, courseID uint) (bool, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return false, util.ErrCourseNotFound
	}
	return toggleBookmark(s.BookmarkRepo, studentID, courseID)
}

func toggleBookmark(store BookmarkStore, studentID, courseID uint) (bool, error) {
	existing, err := store.Find(studentID, courseID)
	if err == nil {
		if err := store.Delete(existing.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	bookmark := &model.Bookmark{
		StudentID: studentID,
		CourseID:  courseID,
	}
	if err := store.Create(bookmark); err != nil {
		return false, err
	}
	return true, nil
}

func (s *BookmarkService) IsBookmarked(studentID, courseID uint) (bool, error) {
	_, err := s.BookmarkRepo.Find(studentID, courseID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *BookmarkService) List(studentID uint) ([]model.Bookmark, error) {
	return s.BookmarkRepo.ListByStudent(studentID)
}
