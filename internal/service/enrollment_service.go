package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnrollmentStore is the slice of the enrollment repository the checkout
// handler needs. Satisfied by *repository.EnrollmentRepository.
type EnrollmentStore interface {
	Find(studentID, courseID uint) (*model.Enrollment, error)
	Create(enrollment *model.Enrollment) error
}

// UserDirectory resolves the student named in the webhook metadata.
// Satisfied by *repository.UserRepository.
type UserDirectory interface {
	FindByID(id uint) (*model.User, error)
}

// CourseLookup resolves the course named in the webhook metadata.
// Satisfied by *repository.CourseRepository.
type CourseLookup interface {
	FindByID(id uint) (*model.Course, error)
}

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
	InstructorRepo *repository.InstructorRepository
	Cfg            *config.Config
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	instructorRepo *repository.InstructorRepository,
	cfg *config.Config,
) *EnrollmentService {
	stripe.Key = cfg.Stripe.SecretKey
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		InstructorRepo: instructorRepo,
		Cfg:            cfg,
	}
}

func (s *EnrollmentService) IsEnrolled(studentID, courseID uint) (bool, error) {
	_, err := s.EnrollmentRepo.Find(studentID, courseID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

type CheckoutResult struct {
	// URL is empty when the course was free and the enrollment was created
	// directly.
	URL      string `json:"url,omitempty"`
	Enrolled bool   `json:"enrolled"`
}

// CreateCheckout opens a Stripe checkout session for a paid course, with the
// course and user ids stashed in the session metadata for the webhook. Free
// courses skip Stripe and enroll immediately.
func (s *EnrollmentService) CreateCheckout(userID, courseID uint) (*CheckoutResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if !course.Published {
		return nil, util.ErrCourseNotFound
	}

	if enrolled, err := s.IsEnrolled(userID, courseID); err != nil {
		return nil, err
	} else if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	// Creators do not buy their own courses.
	if instructor, err := s.InstructorRepo.FindByUserID(userID); err == nil && instructor.ID == course.InstructorID {
		return nil, util.ErrSelfEnrollment
	}

	if course.Price == 0 {
		enrollment := &model.Enrollment{StudentID: userID, CourseID: course.ID}
		if err := s.EnrollmentRepo.Create(enrollment); err != nil {
			return nil, err
		}
		s.recordEnrollment(enrollment)
		return &CheckoutResult{Enrolled: true}, nil
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(course.Title),
					},
					UnitAmount: stripe.Int64(course.Price),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.Cfg.Stripe.SuccessURL),
		CancelURL:  stripe.String(s.Cfg.Stripe.CancelURL),
	}
	params.AddMetadata("courseId", strconv.FormatUint(uint64(course.ID), 10))
	params.AddMetadata("userId", strconv.FormatUint(uint64(userID), 10))

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{URL: sess.URL}, nil
}

// HandleWebhook verifies the payload signature and reacts to completed
// checkout sessions. Every other event type is acknowledged and ignored.
func (s *EnrollmentService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.Cfg.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("parsing checkout session: %w", err)
	}

	return s.HandleCheckoutCompleted(sess.Metadata["courseId"], sess.Metadata["userId"], sess.ID, sess.AmountTotal)
}

// HandleCheckoutCompleted creates exactly one enrollment for the session's
// student and course. Replayed events find the existing row and do nothing.
func (s *EnrollmentService) HandleCheckoutCompleted(courseIDMeta, userIDMeta, paymentID string, amount int64) error {
	created, err := completeCheckout(s.EnrollmentRepo, s.UserRepo, s.CourseRepo, courseIDMeta, userIDMeta, paymentID, amount)
	if err != nil {
		return err
	}
	if created == nil {
		logger.Log.Info("Duplicate checkout event ignored",
			zap.String("courseId", courseIDMeta),
			zap.String("userId", userIDMeta),
			zap.String("paymentId", paymentID))
		return nil
	}

	s.recordEnrollment(created)
	return nil
}

// completeCheckout validates the session metadata and inserts the enrollment
// row. A replayed event finds the existing row and returns (nil, nil), so
// the (student, course) pair never enrolls twice.
func completeCheckout(enrollments EnrollmentStore, users UserDirectory, courses CourseLookup, courseIDMeta, userIDMeta, paymentID string, amount int64) (*model.Enrollment, error) {
	if courseIDMeta == "" || userIDMeta == "" {
		return nil, util.ErrWebhookMetadata
	}

	courseID := util.MustParseUint(courseIDMeta)
	userID := util.MustParseUint(userIDMeta)
	if courseID == 0 || userID == 0 {
		return nil, util.ErrWebhookMetadata
	}

	if _, err := users.FindByID(userID); err != nil {
		return nil, util.ErrUserNotFound
	}
	if _, err := courses.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	if _, err := enrollments.Find(userID, courseID); err == nil {
		return nil, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: userID,
		CourseID:  courseID,
		PaymentID: paymentID,
		Amount:    amount,
	}
	if err := enrollments.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) recordEnrollment(e *model.Enrollment) {
	if err := s.CourseRepo.IncrementEnrollmentCount(e.CourseID); err != nil {
		logger.Log.Warn("Failed to bump enrollment count", zap.Uint("courseId", e.CourseID), zap.Error(err))
	}
	monitoring.EnrollmentCounter.Inc()

	logger.Log.Info("Enrollment created",
		zap.Uint("studentId", e.StudentID),
		zap.Uint("courseId", e.CourseID),
		zap.Int64("amount", e.Amount))
}
