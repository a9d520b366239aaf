package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseSlugList(t *testing.T) {
	t.Run("CleanJSONArray", func(t *testing.T) {
		slugs := parseSlugList(`["go-basics", "web-dev-101", "sql-mastery"]`)
		assert.Equal(t, []string{"go-basics", "web-dev-101", "sql-mastery"}, slugs)
	})

	t.Run("ArrayWrappedInProse", func(t *testing.T) {
		slugs := parseSlugList("Here are my picks:\n[\"go-basics\", \"sql-mastery\"]\nEnjoy!")
		assert.Equal(t, []string{"go-basics", "sql-mastery"}, slugs)
	})

	t.Run("RegexFallback", func(t *testing.T) {
		slugs := parseSlugList("I recommend go-basics and also web-dev-101.")
		assert.Contains(t, slugs, "go-basics")
		assert.Contains(t, slugs, "web-dev-101")
	})

	t.Run("ShortTokensIgnoredByFallback", func(t *testing.T) {
		slugs := parseSlugList("try a, b or c")
		assert.Empty(t, slugs)
	})
}

func TestParseQuiz(t *testing.T) {
	t.Run("ValidQuiz", func(t *testing.T) {
		quiz := parseQuiz(`[{"question":"What is a goroutine?","choices":["A thread","A lightweight thread","A process"],"answer":"A lightweight thread","topic":"Go Basics"}]`)
		assert.Len(t, quiz, 1)
		assert.Equal(t, "Go Basics", quiz[0].Topic)
		assert.Len(t, quiz[0].Choices, 3)
	})

	t.Run("ProseAroundArray", func(t *testing.T) {
		quiz := parseQuiz("Sure! Here is the quiz:\n[{\"question\":\"Q\",\"choices\":[\"a\",\"b\"],\"answer\":\"a\",\"topic\":\"T\"}]")
		assert.Len(t, quiz, 1)
	})

	t.Run("GarbageYieldsEmptyQuiz", func(t *testing.T) {
		quiz := parseQuiz("I cannot generate a quiz right now.")
		assert.NotNil(t, quiz)
		assert.Empty(t, quiz)
	})
}

func TestExcludeSlugs(t *testing.T) {
	owned := []model.Course{{Slug: "go-basics"}, {Slug: "sql-mastery"}}
	out := excludeSlugs([]string{"go-basics", "web-dev-101", "sql-mastery", "rust-intro"}, owned)
	assert.Equal(t, []string{"web-dev-101", "rust-intro"}, out)
}

func TestBuildRecommendationPrompt(t *testing.T) {
	prompt := buildRecommendationPrompt([]model.Course{
		{Title: "Go Basics", Slug: "go-basics"},
		{Title: "SQL Mastery", Slug: "sql-mastery"},
	})
	assert.Contains(t, prompt, "- Go Basics (slug: go-basics)")
	assert.Contains(t, prompt, "- SQL Mastery (slug: sql-mastery)")
	assert.Contains(t, prompt, "JSON array")
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := buildQuizPrompt([]model.Course{{Title: "Go Basics", Slug: "go-basics"}})
	assert.Contains(t, prompt, "5-question quiz")
	assert.Contains(t, prompt, "- Go Basics (slug: go-basics)")
}
