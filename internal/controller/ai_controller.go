package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	RecommendationService *service.RecommendationService
}

func NewAIController(recommendationService *service.RecommendationService) *AIController {
	return &AIController{RecommendationService: recommendationService}
}

// Recommendations godoc
// @Summary Personalized course recommendations
// @Description Builds a prompt from the student's history and enrollments and resolves the model's suggested slugs against the catalog. Falls back to same-category courses.
// @Tags ai
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/ai/recommendations [post]
func (c *AIController) Recommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.RecommendationService.Recommendations(ctx, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// Quiz godoc
// @Summary Quiz over the student's enrolled courses
// @Description Five generated questions mixing topics across enrollments. Unparseable model output yields an empty quiz.
// @Tags ai
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/ai/quiz [post]
func (c *AIController) Quiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.RecommendationService.GenerateQuiz(ctx, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz})
}
