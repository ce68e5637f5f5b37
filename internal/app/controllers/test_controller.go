package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
)

// TestController handles catalog test endpoints
type TestController struct {
	testService services.TestService
}

// NewTestController creates a new TestController
func NewTestController(testService services.TestService) *TestController {
	return &TestController{testService: testService}
}

// Create adds a test to a program
// @Summary Create a test
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTestRequest true "Test"
// @Success 201 {object} dto.APIResponse{data=models.Test}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /admin/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	test, err := c.testService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(test, "Test created"))
}

// Get returns one test
// @Summary Get a test
// @Tags tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=models.Test}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	test, err := c.testService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(test))
}

// List returns tests, optionally scoped to a program. Students see active
// tests only.
// @Summary List tests
// @Tags tests
// @Produce json
// @Param programId query int false "Filter by program"
// @Param active query bool false "Only active tests"
// @Success 200 {object} dto.APIResponse{data=[]models.Test}
// @Router /tests [get]
func (c *TestController) List(ctx *gin.Context) {
	programID, err := optionalIDQuery(ctx, "programId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	activeOnly := ctx.Query("active") == "true"

	tests, err := c.testService.List(ctx.Request.Context(), programID, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tests))
}

// Update modifies a test
// @Summary Update a test
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param request body dto.UpdateTestRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Test}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id} [put]
func (c *TestController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	test, err := c.testService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(test, "Test updated"))
}

// Delete removes a test
// @Summary Delete a test
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.testService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Test deleted"))
}
