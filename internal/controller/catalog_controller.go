package controller

import (
	"errors"
	"strconv"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListCourses godoc
// @Summary Browse the course catalog
// @Description Published courses, filterable and sortable
// @Tags catalog
// @Produce  json
// @Param   category query string false "Comma-separated category slugs"
// @Param   minPrice query int false "Minimum price in cents"
// @Param   maxPrice query int false "Maximum price in cents"
// @Param   free query bool false "Free courses only"
// @Param   paid query bool false "Paid courses only"
// @Param   instructor query int false "Instructor id"
// @Param   search query string false "Search across title, description, category and instructor"
// @Param   sort query string false "newest | oldest | price-low | price-high | popular"
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	filters := parseCourseFilters(ctx)
	courses, err := c.CatalogService.SearchCourses(filters, ctx.Query("sort"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func parseCourseFilters(ctx *gin.Context) model.CourseFilters {
	var filters model.CourseFilters

	if raw := ctx.Query("category"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filters.CategorySlugs = append(filters.CategorySlugs, slug)
			}
		}
	}
	if raw := ctx.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.PriceMin = &v
		}
	}
	if raw := ctx.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.PriceMax = &v
		}
	}
	filters.IsFree = ctx.Query("free") == "true"
	filters.IsPaid = ctx.Query("paid") == "true"
	filters.InstructorID = util.MustParseUint(ctx.Query("instructor"))
	filters.Search = ctx.Query("search")

	return filters
}

// FeaturedCourses godoc
// @Summary Featured courses
// @Tags catalog
// @Produce  json
// @Param   limit query int false "Max results (default 6)"
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/courses/featured [get]
func (c *CatalogController) FeaturedCourses(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	courses, err := c.CatalogService.FeaturedCourses(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Course detail by slug
// @Description Full course with modules and lessons. Unpublished courses are only visible to their creator.
// @Tags catalog
// @Produce  json
// @Param   id path string true "Course slug"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	// The route shares the :id segment with the enrollment and progress
	// routes; course detail looks up by slug.
	course, err := c.CatalogService.GetCourseBySlug(ctx.Param("id"), viewerID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// ListCategories godoc
// @Summary All course categories
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category} "Success"
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.CatalogService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// CoursesByCategory godoc
// @Summary Published courses in a category
// @Tags catalog
// @Produce  json
// @Param   slug path string true "Category slug"
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/categories/{slug}/courses [get]
func (c *CatalogController) CoursesByCategory(ctx *gin.Context) {
	courses, err := c.CatalogService.CoursesByCategory(ctx.Param("slug"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
