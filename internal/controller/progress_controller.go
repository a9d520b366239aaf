package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description At most one completion per student and lesson; repeats are no-ops.
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson id"
// @Success 200 {object} util.Response{data=model.LessonCompletion} "Success"
// @Failure 403 {object} util.Response "Not enrolled"
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id}/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	completion, err := c.ProgressService.CompleteLesson(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		progressError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}

// UncompleteLesson godoc
// @Summary Unmark a lesson completion
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson id"
// @Success 200 {object} util.Response "Success"
// @Router /api/lessons/{id}/uncomplete [post]
func (c *ProgressController) UncompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.UncompleteLesson(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		progressError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetCourseProgress godoc
// @Summary Completion percentage for a course
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=service.CourseProgress} "Success"
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetCourseProgress(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		progressError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// GetHistory godoc
// @Summary Lesson completion history, most recent first
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Max rows"
// @Success 200 {object} util.Response{data=[]model.LessonCompletion} "Success"
// @Router /api/history [get]
func (c *ProgressController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))
	history, err := c.ProgressService.GetHistory(claims.UserID, limit)
	if err != nil {
		progressError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// GetMyCourses godoc
// @Summary Enrolled courses with progress
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.EnrolledCourse} "Success"
// @Router /api/my-courses [get]
func (c *ProgressController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.ProgressService.GetEnrolledCourses(claims.UserID)
	if err != nil {
		progressError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func progressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
