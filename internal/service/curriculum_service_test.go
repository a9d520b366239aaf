package service

import (
	"sort"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCurriculumStore is an in-memory CurriculumStore with auto-increment
// ids, plus a record of which lessons had completions purged.
type fakeCurriculumStore struct {
	modules map[uint]model.CourseModule
	lessons map[uint]model.Lesson
	nextID  uint

	purgedCompletionLessons []uint
}

func newFakeCurriculumStore() *fakeCurriculumStore {
	return &fakeCurriculumStore{
		modules: map[uint]model.CourseModule{},
		lessons: map[uint]model.Lesson{},
	}
}

func (f *fakeCurriculumStore) allocID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeCurriculumStore) ModulesByCourse(courseID uint) ([]model.CourseModule, error) {
	var out []model.CourseModule
	for _, m := range f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeCurriculumStore) LessonsByModule(moduleID uint) ([]model.Lesson, error) {
	var out []model.Lesson
	for _, l := range f.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeCurriculumStore) CreateModule(m *model.CourseModule) error {
	m.ID = f.allocID()
	f.modules[m.ID] = *m
	return nil
}

func (f *fakeCurriculumStore) UpdateModule(m *model.CourseModule) error {
	f.modules[m.ID] = *m
	return nil
}

func (f *fakeCurriculumStore) CreateLesson(l *model.Lesson) error {
	l.ID = f.allocID()
	f.lessons[l.ID] = *l
	return nil
}

func (f *fakeCurriculumStore) UpdateLesson(l *model.Lesson) error {
	f.lessons[l.ID] = *l
	return nil
}

func (f *fakeCurriculumStore) DeleteModules(ids []uint) error {
	for _, id := range ids {
		delete(f.modules, id)
	}
	return nil
}

func (f *fakeCurriculumStore) DeleteLessons(ids []uint) error {
	for _, id := range ids {
		delete(f.lessons, id)
	}
	return nil
}

func (f *fakeCurriculumStore) DeleteCompletionsByLessons(lessonIDs []uint) error {
	f.purgedCompletionLessons = append(f.purgedCompletionLessons, lessonIDs...)
	return nil
}

// inputFromStore rebuilds the submitted tree from the stored state, the way a
// client round-trips the editor payload.
func (f *fakeCurriculumStore) inputFromStore(courseID uint) []ModuleInput {
	modules, _ := f.ModulesByCourse(courseID)
	var out []ModuleInput
	for _, m := range modules {
		mi := ModuleInput{ID: m.ID, Key: m.Key, Title: m.Title}
		lessons, _ := f.LessonsByModule(m.ID)
		for _, l := range lessons {
			mi.Lessons = append(mi.Lessons, LessonInput{
				ID: l.ID, Key: l.Key, Title: l.Title, Slug: l.Slug,
				Description: l.Description, VideoURL: l.VideoURL,
				EmbedURL: l.EmbedURL, Content: l.Content,
			})
		}
		out = append(out, mi)
	}
	return out
}

const testCourseID = uint(42)

func seedCurriculum(t *testing.T, store *fakeCurriculumStore) {
	t.Helper()
	err := reconcileCurriculum(store, testCourseID, []ModuleInput{
		{IsNew: true, Title: "Basics", Lessons: []LessonInput{
			{IsNew: true, Title: "Intro"},
			{IsNew: true, Title: "Setup"},
		}},
		{IsNew: true, Title: "Advanced", Lessons: []LessonInput{
			{IsNew: true, Title: "Deep Dive"},
		}},
	})
	require.NoError(t, err)
}

func TestReconcileCurriculumCreate(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	modules, _ := store.ModulesByCourse(testCourseID)
	require.Len(t, modules, 2)
	assert.Equal(t, "Basics", modules[0].Title)
	assert.Equal(t, 0, modules[0].Position)
	assert.Equal(t, "Advanced", modules[1].Title)
	assert.Equal(t, 1, modules[1].Position)
	assert.NotEmpty(t, modules[0].Key)
	assert.NotEqual(t, modules[0].Key, modules[1].Key)

	lessons, _ := store.LessonsByModule(modules[0].ID)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Intro", lessons[0].Title)
	assert.Equal(t, "intro", lessons[0].Slug)
	assert.Equal(t, 0, lessons[0].Position)
	assert.Equal(t, 1, lessons[1].Position)
}

func TestReconcileCurriculumIdempotent(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	before := map[uint]model.CourseModule{}
	for id, m := range store.modules {
		before[id] = m
	}
	beforeLessons := map[uint]model.Lesson{}
	for id, l := range store.lessons {
		beforeLessons[id] = l
	}

	err := reconcileCurriculum(store, testCourseID, store.inputFromStore(testCourseID))
	require.NoError(t, err)

	assert.Equal(t, before, store.modules)
	assert.Equal(t, beforeLessons, store.lessons)
	assert.Empty(t, store.purgedCompletionLessons)
}

func TestReconcileCurriculumRenameAndAppend(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	input := store.inputFromStore(testCourseID)
	firstID := input[0].ID
	firstKey := input[0].Key
	input[0].Title = "Fundamentals"
	input = append(input, ModuleInput{IsNew: true, Title: "Extras"})

	require.NoError(t, reconcileCurriculum(store, testCourseID, input))

	modules, _ := store.ModulesByCourse(testCourseID)
	require.Len(t, modules, 3)
	assert.Equal(t, firstID, modules[0].ID)
	assert.Equal(t, firstKey, modules[0].Key)
	assert.Equal(t, "Fundamentals", modules[0].Title)
	assert.NotEmpty(t, modules[2].Key)
	assert.NotEqual(t, firstKey, modules[2].Key)
}

func TestReconcileCurriculumRemovesOrphans(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	input := store.inputFromStore(testCourseID)
	droppedModuleID := input[1].ID
	droppedLessonID := input[1].Lessons[0].ID
	// Also drop the second lesson of the kept module.
	orphanLessonID := input[0].Lessons[1].ID
	input[0].Lessons = input[0].Lessons[:1]
	input = input[:1]

	require.NoError(t, reconcileCurriculum(store, testCourseID, input))

	_, moduleExists := store.modules[droppedModuleID]
	assert.False(t, moduleExists)
	_, lessonExists := store.lessons[droppedLessonID]
	assert.False(t, lessonExists)
	_, orphanExists := store.lessons[orphanLessonID]
	assert.False(t, orphanExists)

	assert.ElementsMatch(t, []uint{droppedLessonID, orphanLessonID}, store.purgedCompletionLessons)

	modules, _ := store.ModulesByCourse(testCourseID)
	require.Len(t, modules, 1)
	lessons, _ := store.LessonsByModule(modules[0].ID)
	assert.Len(t, lessons, 1)
}

func TestReconcileCurriculumReorder(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	input := store.inputFromStore(testCourseID)
	input[0], input[1] = input[1], input[0]

	require.NoError(t, reconcileCurriculum(store, testCourseID, input))

	modules, _ := store.ModulesByCourse(testCourseID)
	require.Len(t, modules, 2)
	assert.Equal(t, "Advanced", modules[0].Title)
	assert.Equal(t, "Basics", modules[1].Title)
}

func TestReconcileCurriculumRehomesLesson(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	input := store.inputFromStore(testCourseID)
	moved := input[0].Lessons[1]
	input[0].Lessons = input[0].Lessons[:1]
	input[1].Lessons = append(input[1].Lessons, moved)

	require.NoError(t, reconcileCurriculum(store, testCourseID, input))

	lesson := store.lessons[moved.ID]
	assert.Equal(t, input[1].ID, lesson.ModuleID)
	assert.Equal(t, moved.Key, lesson.Key)
	assert.Empty(t, store.purgedCompletionLessons)
}

func TestReconcileCurriculumUnknownIDs(t *testing.T) {
	store := newFakeCurriculumStore()
	seedCurriculum(t, store)

	err := reconcileCurriculum(store, testCourseID, []ModuleInput{{ID: 999, Title: "Ghost"}})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)

	input := store.inputFromStore(testCourseID)
	input[0].Lessons[0].ID = 999
	err = reconcileCurriculum(store, testCourseID, input)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
