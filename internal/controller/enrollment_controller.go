package controller

import (
	"errors"
	"io"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Checkout godoc
// @Summary Start a checkout for a course
// @Description Returns a Stripe checkout URL for paid courses. Free courses enroll immediately.
// @Tags enrollment
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=service.CheckoutResult} "Success"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/{id}/checkout [post]
func (c *EnrollmentController) Checkout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.EnrollmentService.CreateCheckout(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "Already enrolled")
		case errors.Is(err, util.ErrSelfEnrollment):
			util.BadRequest(ctx, "Instructors cannot enroll in their own courses")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Webhook godoc
// @Summary Stripe webhook receiver
// @Description Verifies the Stripe-Signature header and records enrollments for completed checkouts.
// @Tags enrollment
// @Accept  json
// @Produce  json
// @Success 200 {object} util.Response "Acknowledged"
// @Failure 400 {object} util.Response "Rejected"
// @Router /api/stripe/webhook [post]
func (c *EnrollmentController) Webhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "unreadable payload")
		return
	}

	if err := c.EnrollmentService.HandleWebhook(payload, ctx.GetHeader("Stripe-Signature")); err != nil {
		logger.Log.Warn("Stripe webhook rejected", zap.Error(err))
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// IsEnrolled godoc
// @Summary Whether the current user is enrolled in a course
// @Tags enrollment
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course id"
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/courses/{id}/enrolled [get]
func (c *EnrollmentController) IsEnrolled(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrolled, err := c.EnrollmentService.IsEnrolled(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": enrolled})
}
