package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
)

// SubmissionController handles the student side of test attempts
type SubmissionController struct {
	submissionService services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// Start begins or resumes the student's attempt at a test
// @Summary Start a test attempt
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param testId path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.StartTestResponse}
// @Failure 403 {object} dto.ErrorResponse "No approved enrollment, or access expired"
// @Failure 409 {object} dto.ErrorResponse "Test already completed"
// @Router /submissions/start/{testId} [post]
func (c *SubmissionController) Start(ctx *gin.Context) {
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

	attempt, err := c.submissionService.Start(ctx.Request.Context(), studentID, testID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Test started"
	if attempt.Resumed {
		message = "Test resumed"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(attempt, message))
}

// Submit persists the student's answers and completes the attempt
// @Summary Submit a test attempt
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.SubmitTestRequest true "Answers"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitTestResponse}
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Test already submitted"
// @Router /submissions/{id}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	submissionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.submissionService.Submit(ctx.Request.Context(), submissionID, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(result, "Test submitted"))
}

// Status reports the state of the student's attempt at a test
// @Summary Get attempt status for a test
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param testId path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionStatusResponse}
// @Failure 404 {object} dto.ErrorResponse "No attempt for this test"
// @Router /submissions/status/{testId} [get]
func (c *SubmissionController) Status(ctx *gin.Context) {
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

	status, err := c.submissionService.Status(ctx.Request.Context(), studentID, testID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// SubmittedAnswers returns the student's scored answers after release
// @Summary Get own scored answers
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmittedAnswersResponse}
// @Failure 403 {object} dto.ErrorResponse "Results not released yet"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id}/answers [get]
func (c *SubmissionController) SubmittedAnswers(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	submissionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	answers, err := c.submissionService.SubmittedAnswers(ctx.Request.Context(), submissionID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answers))
}

// MyResults lists the student's completed attempts
// @Summary List own results
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResult}
// @Router /submissions/my-results [get]
func (c *SubmissionController) MyResults(ctx *gin.Context) {
	studentID, err := principalID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	results, err := c.submissionService.MyResults(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}
