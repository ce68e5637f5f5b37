package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment requests, decisions and access checks
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Request handles a student enrollment request
// @Summary Request enrollment in a test
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RequestEnrollmentRequest true "Enrollment request"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment already exists for this test"
// @Router /enrollments [post]
func (c *EnrollmentController) Request(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RequestEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.Request(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(enrollment, "Enrollment requested"))
}

// ListMine lists the student's own enrollment requests
// @Summary List own enrollment requests
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment}
// @Router /enrollments/my [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListMine(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// CheckAccess reports whether the student may take a test right now
// @Summary Check test access
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param testId path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.TestAccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /enrollments/access/{testId} [get]
func (c *EnrollmentController) CheckAccess(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	testID, err := pathID(ctx, "testId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	access, err := c.enrollmentService.CheckAccess(ctx.Request.Context(), studentID, testID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if !access.HasAccess {
		status = http.StatusForbidden
	}
	ctx.JSON(status, dto.NewSuccessResponse(access))
}

// ListAll lists enrollment requests for admins
// @Summary List enrollment requests
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param testId query int false "Filter by test"
// @Param programId query int false "Filter by program"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment}
// @Router /admin/enrollments [get]
func (c *EnrollmentController) ListAll(ctx *gin.Context) {
	var filter dto.EnrollmentListFilter

	if raw := ctx.Query("status"); raw != "" {
		status := models.EnrollmentStatus(raw)
		if !status.Valid() {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid status filter"))
			return
		}
		filter.Status = &status
	}

	var err error
	if filter.TestID, err = optionalIDQuery(ctx, "testId"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if filter.ProgramID, err = optionalIDQuery(ctx, "programId"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = pagination(ctx)

	enrollments, err := c.enrollmentService.ListAll(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// Decide applies an admin decision to a pending enrollment
// @Summary Approve or reject an enrollment request
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.DecideEnrollmentRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentDecisionResponse}
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment already decided"
// @Router /admin/enrollments/{id}/decide [put]
func (c *EnrollmentController) Decide(ctx *gin.Context) {
	adminID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollmentID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.DecideEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	decision, err := c.enrollmentService.Decide(ctx.Request.Context(), enrollmentID, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(decision, "Enrollment "+string(decision.Status)))
}
