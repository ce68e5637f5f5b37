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

// EnquiryController handles prospect enquiries
type EnquiryController struct {
	enquiryService services.EnquiryService
}

// NewEnquiryController creates a new EnquiryController
func NewEnquiryController(enquiryService services.EnquiryService) *EnquiryController {
	return &EnquiryController{enquiryService: enquiryService}
}

// Create handles public enquiry submission
// @Summary Submit an enquiry
// @Tags enquiries
// @Accept json
// @Produce json
// @Param request body dto.CreateEnquiryRequest true "Enquiry details"
// @Success 201 {object} dto.APIResponse{data=models.Enquiry}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /enquiries [post]
func (c *EnquiryController) Create(ctx *gin.Context) {
	var req dto.CreateEnquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	enquiry, err := c.enquiryService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(enquiry, "Enquiry submitted"))
}

// List lists enquiries for admins
// @Summary List enquiries
// @Tags enquiries
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, contacted, enrolled, rejected)"
// @Param search query string false "Match full name or mobile number"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Enquiry}
// @Router /admin/enquiries [get]
func (c *EnquiryController) List(ctx *gin.Context) {
	var filter dto.EnquiryListFilter

	if raw := ctx.Query("status"); raw != "" {
		status := models.EnquiryStatus(raw)
		if !status.Valid() {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid status filter"))
			return
		}
		filter.Status = &status
	}
	filter.Search = ctx.Query("search")
	filter.Page, filter.PageSize = pagination(ctx)

	enquiries, err := c.enquiryService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enquiries))
}

// Delete removes an enquiry
// @Summary Delete an enquiry
// @Tags enquiries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Enquiry not found"
// @Router /admin/enquiries/{id} [delete]
func (c *EnquiryController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enquiryService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Enquiry deleted"))
}
