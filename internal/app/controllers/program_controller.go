package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
)

// ProgramController handles catalog program endpoints
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{programService: programService}
}

// Create adds a program
// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program"
// @Success 201 {object} dto.APIResponse{data=models.Program}
// @Router /admin/programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	program, err := c.programService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(program, "Program created"))
}

// Get returns one program
// @Summary Get a program
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	program, err := c.programService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program))
}

// List returns all programs
// @Summary List programs
// @Tags programs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Program}
// @Router /programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	programs, err := c.programService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(programs))
}

// Update modifies a program
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /admin/programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	program, err := c.programService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(program, "Program updated"))
}

// Delete removes a program
// @Summary Delete a program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /admin/programs/{id} [delete]
func (c *ProgramController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.programService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Program deleted"))
}
