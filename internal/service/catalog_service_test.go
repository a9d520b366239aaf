package service

import (
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCourseDetailStore struct {
	courses map[string]model.Course
}

func (f *fakeCourseDetailStore) FindBySlug(slug string) (*model.Course, error) {
	course, ok := f.courses[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

type fakeInstructorLookup struct {
	// keyed by user id
	profiles map[uint]model.InstructorProfile
}

func (f *fakeInstructorLookup) FindByUserID(userID uint) (*model.InstructorProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func TestCourseForViewer(t *testing.T) {
	courses := &fakeCourseDetailStore{courses: map[string]model.Course{
		"go-basics": {BaseModel: model.BaseModel{ID: 1}, Slug: "go-basics", Published: true, InstructorID: 10},
		"wip-draft": {BaseModel: model.BaseModel{ID: 2}, Slug: "wip-draft", Published: false, InstructorID: 10},
	}}
	instructors := &fakeInstructorLookup{profiles: map[uint]model.InstructorProfile{
		// user 3 owns instructor profile 10, user 4 owns profile 11
		3: {BaseModel: model.BaseModel{ID: 10}},
		4: {BaseModel: model.BaseModel{ID: 11}},
	}}

	t.Run("PublishedVisibleToAnyone", func(t *testing.T) {
		course, err := courseForViewer(courses, instructors, "go-basics", 0)
		require.NoError(t, err)
		assert.Equal(t, uint(1), course.ID)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		_, err := courseForViewer(courses, instructors, "nope", 0)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})

	t.Run("UnpublishedHiddenFromAnonymous", func(t *testing.T) {
		_, err := courseForViewer(courses, instructors, "wip-draft", 0)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})

	t.Run("UnpublishedHiddenFromStudent", func(t *testing.T) {
		// User 7 has no teaching profile at all.
		_, err := courseForViewer(courses, instructors, "wip-draft", 7)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})

	t.Run("UnpublishedHiddenFromOtherInstructor", func(t *testing.T) {
		_, err := courseForViewer(courses, instructors, "wip-draft", 4)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})

	t.Run("UnpublishedVisibleToCreator", func(t *testing.T) {
		course, err := courseForViewer(courses, instructors, "wip-draft", 3)
		require.NoError(t, err)
		assert.Equal(t, uint(2), course.ID)
		assert.False(t, course.Published)
	})
}
