package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrInstructorNotFound = errors.New("instructor profile not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrSelfEnrollment     = errors.New("instructors cannot enroll in their own course")
	ErrWebhookMetadata    = errors.New("checkout session metadata incomplete")
)
