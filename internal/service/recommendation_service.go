package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	aiCacheTTL         = 10 * time.Minute
	maxRecommendations = 6
)

// slugPattern matches slug-looking tokens in free-form model output, used
// when the reply is not a clean JSON array.
var slugPattern = regexp.MustCompile(`[\w-]{6,}`)

// ChatClient is the completion surface RecommendationService needs from the
// AI client.
type ChatClient interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

type RecommendationService struct {
	AI             ChatClient
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CompletionRepo *repository.CompletionRepository
	Redis          *redis.Client
}

func NewRecommendationService(
	ai ChatClient,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	completionRepo *repository.CompletionRepository,
	rdb *redis.Client,
) *RecommendationService {
	return &RecommendationService{
		AI:             ai,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		CompletionRepo: completionRepo,
		Redis:          rdb,
	}
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Topic    string   `json:"topic"`
}

// Recommendations suggests courses based on the student's completion history
// and enrollments. Results are cached per student for a short window.
func (s *RecommendationService) Recommendations(ctx context.Context, userID uint) ([]model.Course, error) {
	cacheKey := fmt.Sprintf("ai:recommendations:%d", userID)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var courses []model.Course
		if err := json.Unmarshal(cached, &courses); err == nil {
			return courses, nil
		}
	}

	userCourses, err := s.userCourses(userID)
	if err != nil {
		return nil, err
	}
	if len(userCourses) == 0 {
		return []model.Course{}, nil
	}

	prompt := buildRecommendationPrompt(userCourses)
	reply, err := s.AI.Chat(ctx,
		"You are a course recommendation AI for an online learning platform. Recommend relevant courses based on the user's history.",
		prompt, 256)

	var courses []model.Course
	if err != nil {
		logger.Log.Warn("Recommendation request failed, using category fallback", zap.Error(err))
	} else {
		slugs := parseSlugList(reply)
		slugs = excludeSlugs(slugs, userCourses)
		if len(slugs) > 0 {
			courses, err = s.CourseRepo.FindBySlugs(slugs)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(courses) == 0 {
		courses, err = s.categoryFallback(userCourses)
		if err != nil {
			return nil, err
		}
	}

	if len(courses) > maxRecommendations {
		courses = courses[:maxRecommendations]
	}

	s.cacheSet(ctx, cacheKey, courses)
	return courses, nil
}

// GenerateQuiz builds a 5-question quiz covering the student's enrolled
// courses.
func (s *RecommendationService) GenerateQuiz(ctx context.Context, userID uint) ([]QuizQuestion, error) {
	cacheKey := fmt.Sprintf("ai:quiz:%d", userID)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var quiz []QuizQuestion
		if err := json.Unmarshal(cached, &quiz); err == nil {
			return quiz, nil
		}
	}

	enrollments, err := s.EnrollmentRepo.ListByStudent(userID)
	if err != nil {
		return nil, err
	}
	enrolled := make([]model.Course, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course.ID != 0 {
			enrolled = append(enrolled, e.Course)
		}
	}
	if len(enrolled) == 0 {
		return []QuizQuestion{}, nil
	}

	reply, err := s.AI.Chat(ctx,
		"You are an expert quiz generator for an online learning platform. Generate engaging, course-relevant quiz questions.",
		buildQuizPrompt(enrolled), 512)
	if err != nil {
		return nil, err
	}

	quiz := parseQuiz(reply)
	if len(quiz) > 0 {
		s.cacheSet(ctx, cacheKey, quiz)
	}
	return quiz, nil
}

// userCourses merges the courses behind the student's completion history and
// enrollments, deduplicated by id.
func (s *RecommendationService) userCourses(userID uint) ([]model.Course, error) {
	completions, err := s.CompletionRepo.ListByStudent(userID, 100)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.ListByStudent(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var courses []model.Course
	add := func(c model.Course) {
		if c.ID == 0 || seen[c.ID] {
			return
		}
		seen[c.ID] = true
		courses = append(courses, c)
	}
	for _, c := range completions {
		add(c.Course)
	}
	for _, e := range enrollments {
		add(e.Course)
	}
	return courses, nil
}

// categoryFallback picks other courses from the categories the student is
// already active in.
func (s *RecommendationService) categoryFallback(userCourses []model.Course) ([]model.Course, error) {
	categorySlugs := make([]string, 0, len(userCourses))
	seen := make(map[string]bool)
	for _, c := range userCourses {
		slug := c.Category.Slug
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		categorySlugs = append(categorySlugs, slug)
	}
	if len(categorySlugs) == 0 {
		return []model.Course{}, nil
	}

	candidates, err := s.CourseRepo.List(model.CourseFilters{CategorySlugs: categorySlugs}, model.SortPopular)
	if err != nil {
		return nil, err
	}

	owned := make(map[uint]bool, len(userCourses))
	for _, c := range userCourses {
		owned[c.ID] = true
	}
	result := make([]model.Course, 0, len(candidates))
	for _, c := range candidates {
		if !owned[c.ID] {
			result = append(result, c)
		}
	}
	return result, nil
}

func buildRecommendationPrompt(userCourses []model.Course) string {
	var b strings.Builder
	b.WriteString("Given the following user course history and enrollments, recommend 3 additional relevant courses from our catalog.\nUser courses (with slugs):\n")
	for _, c := range userCourses {
		fmt.Fprintf(&b, "- %s (slug: %s)\n", c.Title, c.Slug)
	}
	b.WriteString("Respond ONLY with a JSON array of up to 3 course slugs (not titles) that exist in our catalog and are not already in the user's list. Example: [\"slug-1\", \"slug-2\", \"slug-3\"]")
	return b.String()
}

func buildQuizPrompt(enrolled []model.Course) string {
	var b strings.Builder
	b.WriteString("Given the following user-enrolled courses, generate a 5-question quiz.\n")
	b.WriteString("- Mix questions by topic if there are multiple courses.\n")
	b.WriteString("- Each question must be either multiple-choice or single-choice (provide 3-5 choices per question, only one correct answer).\n")
	b.WriteString("- Attach a 'topic' field to each question indicating the relevant course title.\n")
	b.WriteString("- Format as a JSON array of objects: [{\"question\": string, \"choices\": string[], \"answer\": string, \"topic\": string}].\n")
	b.WriteString("- Do NOT include any text outside the JSON array.\nCourses:\n")
	for _, c := range enrolled {
		fmt.Fprintf(&b, "- %s (slug: %s)\n", c.Title, c.Slug)
	}
	return b.String()
}

// parseSlugList reads the model reply as a JSON array of slugs, falling back
// to scanning for slug-shaped tokens when the reply carries extra prose.
func parseSlugList(reply string) []string {
	var slugs []string
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &slugs); err == nil {
		return slugs
	}
	return slugPattern.FindAllString(reply, -1)
}

func parseQuiz(reply string) []QuizQuestion {
	var quiz []QuizQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(reply)), &quiz); err != nil {
		return []QuizQuestion{}
	}
	return quiz
}

// extractJSONArray trims prose around the outermost JSON array, if any.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func excludeSlugs(slugs []string, userCourses []model.Course) []string {
	owned := make(map[string]bool, len(userCourses))
	for _, c := range userCourses {
		owned[c.Slug] = true
	}
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if !owned[s] {
			out = append(out, s)
		}
	}
	return out
}

func (s *RecommendationService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.Redis == nil {
		return nil, false
	}
	data, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *RecommendationService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, aiCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache AI response", zap.String("key", key), zap.Error(err))
	}
}
