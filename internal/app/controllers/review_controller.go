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

// ReviewController handles the admin side of test attempts
type ReviewController struct {
	reviewService services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// List returns the admin review queue
// @Summary List submissions for review
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param testId query int false "Filter by test"
// @Param programId query int false "Filter by program"
// @Param studentId query int false "Filter by student"
// @Success 200 {object} dto.APIResponse{data=[]models.Submission}
// @Router /admin/submissions [get]
func (c *ReviewController) List(ctx *gin.Context) {
	var filter dto.SubmissionListFilter

	if raw := ctx.Query("status"); raw != "" {
		status := models.SubmissionStatus(raw)
		switch status {
		case models.SubmissionInProgress, models.SubmissionSubmitted,
			models.SubmissionUnderReview, models.SubmissionResultReleased:
			filter.Status = &status
		default:
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid status filter"))
			return
		}
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
	if filter.StudentID, err = optionalIDQuery(ctx, "studentId"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = pagination(ctx)

	submissions, err := c.reviewService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submissions))
}

// Detail returns one attempt with answers and correct options for grading
// @Summary Get a submission for review
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /admin/submissions/{id} [get]
func (c *ReviewController) Detail(ctx *gin.Context) {
	submissionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail, err := c.reviewService.Detail(ctx.Request.Context(), submissionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// Review applies a grading pass to a submission
// @Summary Review a submission
// @Tags review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.ReviewSubmissionRequest true "Grading"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewSubmissionResponse}
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission not available for review"
// @Router /admin/submissions/{id}/review [put]
func (c *ReviewController) Review(ctx *gin.Context) {
	adminID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	submissionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ReviewSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.reviewService.Review(ctx.Request.Context(), submissionID, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(result, "Submission reviewed"))
}

// Release moves a reviewed submission to result_released
// @Summary Release a reviewed result
// @Tags review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.ReleaseResultRequest false "Optional notes"
// @Success 200 {object} dto.APIResponse{data=dto.ReleaseResultResponse}
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission not reviewed yet"
// @Router /admin/submissions/{id}/release [put]
func (c *ReviewController) Release(ctx *gin.Context) {
	adminID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	submissionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ReleaseResultRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
	}

	result, err := c.reviewService.Release(ctx.Request.Context(), submissionID, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(result, "Result released"))
}

// Stats aggregates submission counts and released-result performance
// @Summary Get submission statistics
// @Tags review
// @Produce json
// @Security BearerAuth
// @Param testId query int false "Scope to a test"
// @Param programId query int false "Scope to a program"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionStatsResponse}
// @Router /admin/submissions/stats [get]
func (c *ReviewController) Stats(ctx *gin.Context) {
	testID, err := optionalIDQuery(ctx, "testId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	programID, err := optionalIDQuery(ctx, "programId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.reviewService.Stats(ctx.Request.Context(), testID, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
