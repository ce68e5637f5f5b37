// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// AuthController handles registration and login
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterStudent handles student registration
// @Summary Register a new student
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentRegisterRequest true "Student registration information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Mobile number already registered"
// @Router /auth/student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(student, "Registration successful"))
}

// LoginStudent handles student login
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Student credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	token, err := c.authService.LoginStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

// LoginAdmin handles admin login
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/admin/login [post]
func (c *AuthController) LoginAdmin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	token, err := c.authService.LoginAdmin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

// ListStudents lists all registered students for admins
// @Summary List students
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Router /admin/students [get]
func (c *AuthController) ListStudents(ctx *gin.Context) {
	students, err := c.authService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// RegisterAdmin creates another admin account
// @Summary Register a new admin
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminRegisterRequest true "Admin account information"
// @Success 201 {object} dto.APIResponse{data=dto.AdminResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /admin/admins [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.AdminRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	admin, err := c.authService.RegisterAdmin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(admin, "Admin registered"))
}

// ListAdmins lists all admin accounts
// @Summary List admins
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminResponse}
// @Router /admin/admins [get]
func (c *AuthController) ListAdmins(ctx *gin.Context) {
	admins, err := c.authService.ListAdmins(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(admins))
}

// Profile returns the authenticated student's profile
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /auth/student/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	studentID, ok := middleware.PrincipalID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.authService.GetStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}
