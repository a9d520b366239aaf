package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func lessonsWithIDs(ids ...uint) []model.Lesson {
	lessons := make([]model.Lesson, 0, len(ids))
	for _, id := range ids {
		l := model.Lesson{}
		l.ID = id
		lessons = append(lessons, l)
	}
	return lessons
}

func completionsFor(lessonIDs ...uint) []model.LessonCompletion {
	completions := make([]model.LessonCompletion, 0, len(lessonIDs))
	for _, id := range lessonIDs {
		completions = append(completions, model.LessonCompletion{LessonID: id})
	}
	return completions
}

func TestCalculateCourseProgress(t *testing.T) {
	t.Run("NoLessons", func(t *testing.T) {
		modules := []model.CourseModule{{Title: "Empty"}}
		assert.Equal(t, 0, CalculateCourseProgress(modules, nil))
	})

	t.Run("NilSlices", func(t *testing.T) {
		assert.Equal(t, 0, CalculateCourseProgress(nil, nil))
	})

	t.Run("AllComplete", func(t *testing.T) {
		modules := []model.CourseModule{
			{Lessons: lessonsWithIDs(1, 2)},
			{Lessons: lessonsWithIDs(3)},
		}
		assert.Equal(t, 100, CalculateCourseProgress(modules, completionsFor(1, 2, 3)))
	})

	t.Run("ThreeOfFive", func(t *testing.T) {
		modules := []model.CourseModule{
			{Lessons: lessonsWithIDs(1, 2, 3)},
			{Lessons: lessonsWithIDs(4, 5)},
		}
		assert.Equal(t, 60, CalculateCourseProgress(modules, completionsFor(1, 3, 5)))
	})

	t.Run("Rounds", func(t *testing.T) {
		modules := []model.CourseModule{{Lessons: lessonsWithIDs(1, 2, 3)}}
		// 1/3 -> 33.33 rounds down, 2/3 -> 66.67 rounds up.
		assert.Equal(t, 33, CalculateCourseProgress(modules, completionsFor(1)))
		assert.Equal(t, 67, CalculateCourseProgress(modules, completionsFor(1, 2)))
	})

	t.Run("CompletionsOutsideCourseIgnored", func(t *testing.T) {
		modules := []model.CourseModule{{Lessons: lessonsWithIDs(1, 2)}}
		assert.Equal(t, 50, CalculateCourseProgress(modules, completionsFor(1, 99)))
	})

	t.Run("AlwaysInRange", func(t *testing.T) {
		modules := []model.CourseModule{{Lessons: lessonsWithIDs(1, 2, 3, 4, 5, 6, 7)}}
		for n := uint(0); n <= 7; n++ {
			ids := make([]uint, 0, n)
			for id := uint(1); id <= n; id++ {
				ids = append(ids, id)
			}
			got := CalculateCourseProgress(modules, completionsFor(ids...))
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	})
}
