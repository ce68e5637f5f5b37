package services

import (
	"context"
	"errors"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/auth"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// AuthService handles registration and token issuance for both principal
// kinds. The role is resolved here, once, and baked into the token.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.StudentResponse, error)
	LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error)
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	GetStudent(ctx context.Context, id int64) (*dto.StudentResponse, error)
	ListStudents(ctx context.Context) ([]dto.StudentResponse, error)
	RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.AdminResponse, error)
	ListAdmins(ctx context.Context) ([]dto.AdminResponse, error)
}

type authService struct {
	students StudentStore
	admins   AdminStore
	jwt      *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(students StudentStore, admins AdminStore, jwt *auth.JWTService) AuthService {
	return &authService{
		students: students,
		admins:   admins,
		jwt:      jwt,
	}
}

// RegisterStudent creates a student account. The mobile number is the unique
// login identifier; a duplicate maps to a conflict.
func (s *authService) RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.StudentResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Mobile:        req.Mobile,
		Qualification: req.Qualification,
		PasswordHash:  hash,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMobile) {
			return nil, apperrors.NewConflictError("This mobile number is already registered")
		}
		return nil, err
	}

	logger.Info().Int64("studentId", student.ID).Msg("Student registered")

	return studentResponse(student), nil
}

// LoginStudent verifies credentials and issues a student token.
func (s *authService) LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error) {
	student, err := s.students.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, err
	}
	if student == nil || !auth.CheckPassword(student.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(student.ID, auth.RoleStudent)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Role:      string(auth.RoleStudent),
	}, nil
}

// LoginAdmin verifies credentials and issues an admin token.
func (s *authService) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(admin.ID, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Role:      string(auth.RoleAdmin),
	}, nil
}

// GetStudent returns a student's public profile.
func (s *authService) GetStudent(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewResourceNotFoundError("Student not found")
	}
	return studentResponse(student), nil
}

// ListStudents returns all registered students for admins, without password
// material.
func (s *authService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, *studentResponse(&students[i]))
	}
	return out, nil
}

// RegisterAdmin creates another admin account. A duplicate email maps to a
// conflict.
func (s *authService) RegisterAdmin(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.AdminResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.NewConflictError("An admin with this email already exists")
		}
		return nil, err
	}

	logger.Info().Int64("adminId", admin.ID).Msg("Admin registered")

	return adminResponse(admin), nil
}

// ListAdmins returns all admin accounts.
func (s *authService) ListAdmins(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, *adminResponse(&admins[i]))
	}
	return out, nil
}

func adminResponse(a *models.Admin) *dto.AdminResponse {
	return &dto.AdminResponse{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
	}
}

func studentResponse(s *models.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:            s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Mobile:        s.Mobile,
		Qualification: s.Qualification,
	}
}
