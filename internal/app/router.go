package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerCreatorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Stripe calls this; auth is the signature header.
		public.POST("/stripe/webhook", c.enrollment.Webhook)

		// Catalog is public. Optional auth lets creators see their own
		// unpublished courses on the detail page.
		public.GET("/courses", c.catalog.ListCourses)
		public.GET("/courses/featured", c.catalog.FeaturedCourses)
		public.GET("/courses/:id", middleware.OptionalAuthMiddleware(cfg), c.catalog.GetCourse)
		public.GET("/categories", c.catalog.ListCategories)
		public.GET("/categories/:slug/courses", c.catalog.CoursesByCategory)
		public.GET("/instructors/:id", c.instructor.GetInstructor)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// Enrollment & payments
	rg.POST("/courses/:id/checkout", c.enrollment.Checkout)
	rg.GET("/courses/:id/enrolled", c.enrollment.IsEnrolled)
	rg.GET("/my-courses", c.progress.GetMyCourses)

	// Progress
	rg.POST("/lessons/:id/complete", c.progress.CompleteLesson)
	rg.POST("/lessons/:id/uncomplete", c.progress.UncompleteLesson)
	rg.GET("/courses/:id/progress", c.progress.GetCourseProgress)
	rg.GET("/history", c.progress.GetHistory)

	// Bookmarks
	rg.POST("/courses/:id/bookmark-toggle", c.bookmark.Toggle)
	rg.GET("/courses/:id/bookmarked", c.bookmark.IsBookmarked)
	rg.GET("/bookmarks", c.bookmark.List)

	// Instructor following
	rg.POST("/instructor/apply", c.instructor.Apply)
	rg.GET("/instructor/status", c.instructor.Status)
	rg.POST("/instructors/:id/follow-toggle", c.instructor.ToggleFollow)
	rg.GET("/instructors/:id/following", c.instructor.IsFollowing)
	rg.GET("/subscriptions", c.instructor.Subscriptions)
	rg.GET("/notifications", c.instructor.Notifications)

	// AI
	rg.POST("/ai/recommendations", c.ai.Recommendations)
	rg.POST("/ai/quiz", c.ai.Quiz)
}

func (a *App) registerCreatorRoutes(rg *gin.RouterGroup, c *controllers) {
	creator := rg.Group("/creator")
	creator.Use(middleware.RoleMiddleware(model.Instructor))
	{
		creator.POST("/courses", c.course.CreateCourse)
		creator.GET("/courses", c.course.ListOwnCourses)
		creator.GET("/courses/:id", c.course.GetCourseForEditing)
		creator.PUT("/courses/:id", c.course.UpdateCourse)
		creator.DELETE("/courses/:id", c.course.DeleteCourse)
		creator.POST("/courses/:id/publish", c.course.PublishCourse)
		creator.POST("/courses/:id/unpublish", c.course.UnpublishCourse)
		creator.PUT("/courses/:id/curriculum", c.course.UpdateCurriculum)
		creator.POST("/uploads/image", c.course.UploadCourseImage)
		creator.POST("/uploads/video", c.course.UploadLessonVideo)
	}
}
