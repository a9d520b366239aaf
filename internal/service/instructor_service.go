package service

import (
	"errors"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// FollowStore is the slice of the follow repository the toggle needs.
// Satisfied by *repository.FollowRepository.
type FollowStore interface {
	Find(studentID, instructorID uint) (*model.InstructorFollow, error)
	Create(follow *model.InstructorFollow) error
	Delete(id uint) error
}

type InstructorService struct {
	InstructorRepo *repository.InstructorRepository
	UserRepo       *repository.UserRepository
	FollowRepo     *repository.FollowRepository
	CourseRepo     *repository.CourseRepository
}

func NewInstructorService(
	instructorRepo *repository.InstructorRepository,
	userRepo *repository.UserRepository,
	followRepo *repository.FollowRepository,
	courseRepo *repository.CourseRepository,
) *InstructorService {
	return &InstructorService{
		InstructorRepo: instructorRepo,
		UserRepo:       userRepo,
		FollowRepo:     followRepo,
		CourseRepo:     courseRepo,
	}
}

type BecomeInstructorRequest struct {
	Name     string `json:"name" binding:"required"`
	Bio      string `json:"bio" binding:"required"`
	PhotoURL string `json:"photoUrl"`
}

// BecomeInstructor creates the teaching profile and upgrades the user's
// role. Idempotent: an existing profile is returned unchanged.
func (s *InstructorService) BecomeInstructor(userID uint, req BecomeInstructorRequest) (*model.InstructorProfile, error) {
	existing, err := s.InstructorRepo.FindByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &model.InstructorProfile{
		UserID:   userID,
		Name:     req.Name,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	}
	if err := s.InstructorRepo.Create(profile); err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateRole(userID, model.Instructor); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *InstructorService) GetOwnProfile(userID uint) (*model.InstructorProfile, error) {
	profile, err := s.InstructorRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInstructorNotFound
		}
		return nil, err
	}
	return profile, nil
}

// ToggleFollow flips the student's follow state for an instructor and
// returns the new state. Toggling twice restores the original state.
func (s *InstructorService) ToggleFollow(studentID, instructorID uint) (bool, error) {
	if _, err := s.InstructorRepo.FindByID(instructorID); err != nil {
		return false, util.ErrInstructorNotFound
	}
	return toggleFollow(s.FollowRepo, studentID, instructorID)
}

func toggleFollow(store FollowStore, studentID, instructorID uint) (bool, error) {
	existing, err := store.Find(studentID, instructorID)
	if err == nil {
		if err := store.Delete(existing.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	follow := &model.InstructorFollow{
		StudentID:    studentID,
		InstructorID: instructorID,
	}
	if err := store.Create(follow); err != nil {
		return false, err
	}
	return true, nil
}

func (s *InstructorService) IsFollowing(studentID, instructorID uint) (bool, error) {
	_, err := s.FollowRepo.Find(studentID, instructorID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// InstructorDirectory is the slice of the instructor repository the
// subscription list needs. Satisfied by *repository.InstructorRepository.
type InstructorDirectory interface {
	FindByID(id uint) (*model.InstructorProfile, error)
	CountFollowers(instructorID uint) (int64, error)
}

// RecentCourseLister is the slice of the course repository the subscription
// list needs. Satisfied by *repository.CourseRepository.
type RecentCourseLister interface {
	ListRecentByInstructors(instructorIDs []uint, limit int) ([]model.Course, error)
}

const subscriptionRecentCourses = 3

type Subscription struct {
	Instructor    model.InstructorProfile `json:"instructor"`
	Followers     int64                   `json:"followers"`
	RecentCourses []model.Course          `json:"recentCourses"`
}

// Subscriptions lists the instructors the student follows, each with its
// follower count and latest published courses.
func (s *InstructorService) Subscriptions(studentID uint) ([]Subscription, error) {
	follows, err := s.FollowRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return buildSubscriptions(follows, s.InstructorRepo, s.CourseRepo)
}

func buildSubscriptions(follows []model.InstructorFollow, instructors InstructorDirectory, courses RecentCourseLister) ([]Subscription, error) {
	subscriptions := make([]Subscription, 0, len(follows))
	for _, f := range follows {
		instructor, err := instructors.FindByID(f.InstructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Profile removed since the follow was created.
				continue
			}
			return nil, err
		}

		followers, err := instructors.CountFollowers(f.InstructorID)
		if err != nil {
			return nil, err
		}

		recent, err := courses.ListRecentByInstructors([]uint{f.InstructorID}, subscriptionRecentCourses)
		if err != nil {
			return nil, err
		}

		subscriptions = append(subscriptions, Subscription{
			Instructor:    *instructor,
			Followers:     followers,
			RecentCourses: recent,
		})
	}
	return subscriptions, nil
}

// Notifications returns recently published courses from the instructors the
// student follows.
func (s *InstructorService) Notifications(studentID uint, limit int) ([]model.Course, error) {
	follows, err := s.FollowRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	instructorIDs := make([]uint, 0, len(follows))
	for _, f := range follows {
		instructorIDs = append(instructorIDs, f.InstructorID)
	}

	if limit <= 0 {
		limit = 20
	}
	return s.CourseRepo.ListRecentByInstructors(instructorIDs, limit)
}
