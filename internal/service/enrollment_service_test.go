package service

import (
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEnrollmentStore struct {
	rows    map[uint]model.Enrollment
	nextID  uint
	creates int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{rows: map[uint]model.Enrollment{}}
}

func (f *fakeEnrollmentStore) Find(studentID, courseID uint) (*model.Enrollment, error) {
	for _, row := range f.rows {
		if row.StudentID == studentID && row.CourseID == courseID {
			found := row
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollmentStore) Create(enrollment *model.Enrollment) error {
	f.creates++
	f.nextID++
	enrollment.ID = f.nextID
	f.rows[enrollment.ID] = *enrollment
	return nil
}

type fakeUserDirectory struct {
	users map[uint]model.User
}

func (f *fakeUserDirectory) FindByID(id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

type fakeCourseLookup struct {
	courses map[uint]model.Course
}

func (f *fakeCourseLookup) FindByID(id uint) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

func TestCompleteCheckout(t *testing.T) {
	users := &fakeUserDirectory{users: map[uint]model.User{
		1: {BaseModel: model.BaseModel{ID: 1}, Name: "Student"},
	}}
	courses := &fakeCourseLookup{courses: map[uint]model.Course{
		42: {BaseModel: model.BaseModel{ID: 42}, Title: "Go Basics", Published: true},
	}}

	t.Run("CreatesEnrollment", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		created, err := completeCheckout(store, users, courses, "42", "1", "cs_test_123", 4999)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.StudentID)
		assert.Equal(t, uint(42), created.CourseID)
		assert.Equal(t, "cs_test_123", created.PaymentID)
		assert.Equal(t, int64(4999), created.Amount)
		assert.Len(t, store.rows, 1)
	})

	t.Run("ReplayedEventCreatesNothing", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		created, err := completeCheckout(store, users, courses, "42", "1", "cs_test_123", 4999)
		require.NoError(t, err)
		require.NotNil(t, created)

		// Stripe redelivers the same session: the existing row is found and
		// the replay is a no-op, not an error.
		created, err = completeCheckout(store, users, courses, "42", "1", "cs_test_123", 4999)
		require.NoError(t, err)
		assert.Nil(t, created)
		assert.Len(t, store.rows, 1)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("MissingMetadata", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		_, err := completeCheckout(store, users, courses, "", "1", "cs_test_123", 4999)
		assert.ErrorIs(t, err, util.ErrWebhookMetadata)

		_, err = completeCheckout(store, users, courses, "42", "", "cs_test_123", 4999)
		assert.ErrorIs(t, err, util.ErrWebhookMetadata)

		_, err = completeCheckout(store, users, courses, "not-a-number", "1", "cs_test_123", 4999)
		assert.ErrorIs(t, err, util.ErrWebhookMetadata)

		assert.Empty(t, store.rows)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		_, err := completeCheckout(store, users, courses, "42", "999", "cs_test_123", 4999)
		assert.ErrorIs(t, err, util.ErrUserNotFound)
		assert.Empty(t, store.rows)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		_, err := completeCheckout(store, users, courses, "777", "1", "cs_test_123", 4999)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
		assert.Empty(t, store.rows)
	})
}
