package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	BookmarkService *service.BookmarkService
}

func NewBookmarkController(bookmarkService *service.BookmarkService) *BookmarkController {
	return &BookmarkController{BookmarkService: bookmarkService}
}

// Toggle godoc
// @Summary Toggle a course bookmark
// @Description Bookmarks the course, or removes the bookmark if it exists. Returns the new state.
// @Tags bookmarks
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/bookmark-toggle [post]
func (c *BookmarkController) Toggle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	bookmarked, err := c.BookmarkService.Toggle(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"bookmarked": bookmarked})
}

// IsBookmarked godoc
// @Summary Whether the current user bookmarked a course
// @Tags bookmarks
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/courses/{id}/bookmarked [get]
func (c *BookmarkController) IsBookmarked(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	bookmarked, err := c.BookmarkService.IsBookmarked(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"bookmarked": bookmarked})
}

// List godoc
// @Summary The current user's bookmarked courses
// @Tags bookmarks
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Bookmark} "Success"
// @Router /api/bookmarks [get]
func (c *BookmarkController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	bookmarks, err := c.BookmarkService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bookmarks)
}
