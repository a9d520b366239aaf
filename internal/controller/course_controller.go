package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	CurriculumService *service.CurriculumService
	MediaService      *service.MediaService
}

func NewCourseController(
	courseService *service.CourseService,
	curriculumService *service.CurriculumService,
	mediaService *service.MediaService,
) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		CurriculumService: curriculumService,
		MediaService:      mediaService,
	}
}

// courseError maps service errors onto the response envelope.
func courseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInstructorNotFound),
		errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSlugTaken):
		util.Error(ctx, 409, "Slug already in use")
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates an unpublished course owned by the calling instructor. Unknown category slugs create the category on the fly.
// @Tags creator
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateCourseRequest true "Course fields"
// @Success 201 {object} util.Response{data=model.Course} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Slug taken"
// @Router /api/creator/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags creator
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Param   body body service.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} util.Response "Success"
// @Router /api/creator/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.UpdateCourse(claims.UserID, util.MustParseUint(ctx.Param("id")), req); err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishCourse godoc
// @Summary Publish a course
// @Tags creator
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response "Success"
// @Router /api/creator/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	c.setPublished(ctx, true)
}

// UnpublishCourse godoc
// @Summary Unpublish a course
// @Tags creator
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response "Success"
// @Router /api/creator/courses/{id}/unpublish [post]
func (c *CourseController) UnpublishCourse(ctx *gin.Context) {
	c.setPublished(ctx, false)
}

func (c *CourseController) setPublished(ctx *gin.Context, published bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.SetPublished(claims.UserID, util.MustParseUint(ctx.Param("id")), published); err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"published": published})
}

// DeleteCourse godoc
// @Summary Delete a course and everything that hangs off it
// @Description Removes completions, enrollments, bookmarks, lessons and modules in one transaction, then the course itself.
// @Tags creator
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response "Success"
// @Router /api/creator/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListOwnCourses godoc
// @Summary The calling instructor's courses
// @Tags creator
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/creator/courses [get]
func (c *CourseController) ListOwnCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListOwnCourses(claims.UserID)
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourseForEditing godoc
// @Summary Full course tree for the editor, any publish state
// @Tags creator
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Router /api/creator/courses/{id} [get]
func (c *CourseController) GetCourseForEditing(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.GetCourseForEditing(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// UpdateCurriculum godoc
// @Summary Replace a course's module/lesson tree
// @Description Creates new modules and lessons, patches existing ones in place, rewrites ordering, and removes anything missing from the submitted tree. Runs in one transaction.
// @Tags creator
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Param   body body []service.ModuleInput true "Ordered module tree"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/creator/courses/{id}/curriculum [put]
func (c *CourseController) UpdateCurriculum(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var modules []service.ModuleInput
	if err := ctx.ShouldBindJSON(&modules); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	if err := c.CurriculumService.UpdateCurriculum(claims.UserID, courseID, modules); err != nil {
		courseError(ctx, err)
		return
	}

	course, err := c.CurriculumService.GetCurriculum(claims.UserID, courseID)
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// UploadCourseImage godoc
// @Summary Upload a course cover image
// @Tags creator
// @Accept multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId formData int true "Course id"
// @Param   file formData file true "Cover image"
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/creator/uploads/image [post]
func (c *CourseController) UploadCourseImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.PostForm("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "missing courseId")
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	url, err := c.MediaService.UploadCourseImage(ctx, claims.UserID, courseID, file)
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video, probes duration with ffmpeg and generates a thumbnail frame.
// @Tags creator
// @Accept multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId formData int true "Lesson id"
// @Param   file formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Lesson} "Success"
// @Router /api/creator/uploads/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.PostForm("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "missing lessonId")
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	lesson, err := c.MediaService.UploadLessonVideo(ctx, claims.UserID, lessonID, file)
	if err != nil {
		courseError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
