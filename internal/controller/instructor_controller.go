package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InstructorController struct {
	InstructorService *service.InstructorService
	CatalogService    *service.CatalogService
}

func NewInstructorController(
	instructorService *service.InstructorService,
	catalogService *service.CatalogService,
) *InstructorController {
	return &InstructorController{
		InstructorService: instructorService,
		CatalogService:    catalogService,
	}
}

// Apply godoc
// @Summary Become an instructor
// @Description Creates the teaching profile and upgrades the account role. Calling again returns the existing profile.
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.BecomeInstructorRequest true "Profile fields"
// @Success 200 {object} util.Response{data=model.InstructorProfile} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/instructor/apply [post]
func (c *InstructorController) Apply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BecomeInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.InstructorService.BecomeInstructor(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// Status godoc
// @Summary The current user's instructor profile, if any
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/instructor/status [get]
func (c *InstructorController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.InstructorService.GetOwnProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrInstructorNotFound) {
			util.Success(ctx, gin.H{"isInstructor": false})
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"isInstructor": true, "profile": profile})
}

// GetInstructor godoc
// @Summary Public instructor page
// @Description Profile, published courses and follower count.
// @Tags instructor
// @Produce  json
// @Param   id path int true "Instructor id"
// @Success 200 {object} util.Response{data=service.InstructorPage} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructors/{id} [get]
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	page, err := c.CatalogService.GetInstructorPage(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrInstructorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, page)
}

// ToggleFollow godoc
// @Summary Follow or unfollow an instructor
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Instructor id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Instructor not found"
// @Router /api/instructors/{id}/follow-toggle [post]
func (c *InstructorController) ToggleFollow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	following, err := c.InstructorService.ToggleFollow(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrInstructorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"following": following})
}

// IsFollowing godoc
// @Summary Whether the current user follows an instructor
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Instructor id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/instructors/{id}/following [get]
func (c *InstructorController) IsFollowing(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	following, err := c.InstructorService.IsFollowing(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"following": following})
}

// Subscriptions godoc
// @Summary List followed instructors
// @Description The instructors the student follows, each with follower count and recent published courses
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.Subscription} "Success"
// @Router /api/subscriptions [get]
func (c *InstructorController) Subscriptions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subscriptions, err := c.InstructorService.Subscriptions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subscriptions)
}

// Notifications godoc
// @Summary Recent courses from followed instructors
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Max results (default 20)"
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/notifications [get]
func (c *InstructorController) Notifications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))
	courses, err := c.InstructorService.Notifications(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
