package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCourseGraphStore records the cascade walk so the test can verify every
// dependent table is visited before the course row goes.
type fakeCourseGraphStore struct {
	moduleIDs []uint

	calls            []string
	lessonModuleIDs  []uint
	deletedCourseIDs []uint
}

func (f *fakeCourseGraphStore) ModulesByCourse(courseID uint) ([]model.CourseModule, error) {
	f.calls = append(f.calls, "modulesByCourse")
	out := make([]model.CourseModule, 0, len(f.moduleIDs))
	for _, id := range f.moduleIDs {
		m := model.CourseModule{CourseID: courseID}
		m.ID = id
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCourseGraphStore) DeleteCompletionsByCourse(courseID uint) error {
	f.calls = append(f.calls, "completions")
	return nil
}

func (f *fakeCourseGraphStore) DeleteEnrollmentsByCourse(courseID uint) error {
	f.calls = append(f.calls, "enrollments")
	return nil
}

func (f *fakeCourseGraphStore) DeleteBookmarksByCourse(courseID uint) error {
	f.calls = append(f.calls, "bookmarks")
	return nil
}

func (f *fakeCourseGraphStore) DeleteLessonsByModules(moduleIDs []uint) error {
	f.calls = append(f.calls, "lessons")
	f.lessonModuleIDs = moduleIDs
	return nil
}

func (f *fakeCourseGraphStore) DeleteModulesByCourse(courseID uint) error {
	f.calls = append(f.calls, "modules")
	return nil
}

func (f *fakeCourseGraphStore) DeleteCourse(courseID uint) error {
	f.calls = append(f.calls, "course")
	f.deletedCourseIDs = append(f.deletedCourseIDs, courseID)
	return nil
}

func TestDeleteCourseGraphWalksEverything(t *testing.T) {
	store := &fakeCourseGraphStore{moduleIDs: []uint{7, 8}}

	require.NoError(t, deleteCourseGraph(store, 42))

	assert.Equal(t, []string{
		"completions",
		"enrollments",
		"bookmarks",
		"modulesByCourse",
		"lessons",
		"modules",
		"course",
	}, store.calls)
	assert.Equal(t, []uint{7, 8}, store.lessonModuleIDs)
	assert.Equal(t, []uint{42}, store.deletedCourseIDs)
}

func TestDeleteCourseGraphNoModules(t *testing.T) {
	store := &fakeCourseGraphStore{}

	require.NoError(t, deleteCourseGraph(store, 9))

	assert.Equal(t, []uint{9}, store.deletedCourseIDs)
	assert.Empty(t, store.lessonModuleIDs)
}
