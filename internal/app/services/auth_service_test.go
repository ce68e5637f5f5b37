package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/auth"
)

func newAuthFixture() (AuthService, *fakeStudentStore, *fakeAdminStore) {
	students := newFakeStudentStore()
	admins := newFakeAdminStore()
	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "examportal-test",
	})
	return NewAuthService(students, admins, jwt), students, admins
}

func TestRegisterStudentDuplicateMobile(t *testing.T) {
	svc, _, _ := newAuthFixture()
	req := &dto.StudentRegisterRequest{
		FirstName: "Ravi", LastName: "Kumar",
		Mobile: "9876543210", Password: "secret1",
	}

	_, err := svc.RegisterStudent(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterStudent(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoginStudentBadPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.RegisterStudent(context.Background(), &dto.StudentRegisterRequest{
		FirstName: "Ravi", LastName: "Kumar",
		Mobile: "9876543210", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		Mobile: "9876543210", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	token, err := svc.LoginStudent(context.Background(), &dto.StudentLoginRequest{
		Mobile: "9876543210", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleStudent), token.Role)
}

func TestListStudents(t *testing.T) {
	svc, _, _ := newAuthFixture()
	for _, mobile := range []string{"9876543210", "9123456789"} {
		_, err := svc.RegisterStudent(context.Background(), &dto.StudentRegisterRequest{
			FirstName: "Student", LastName: mobile,
			Mobile: mobile, Password: "secret1",
		})
		require.NoError(t, err)
	}

	students, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestRegisterAdminDuplicateEmail(t *testing.T) {
	svc, _, admins := newAuthFixture()
	req := &dto.AdminRegisterRequest{
		FullName: "Second Admin",
		Email:    "second@examportal.local",
		Password: "secret1",
	}

	created, err := svc.RegisterAdmin(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "second@examportal.local", created.Email)

	stored, err := admins.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	_, err = svc.RegisterAdmin(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "email already exists")
}

func TestListAdmins(t *testing.T) {
	svc, _, _ := newAuthFixture()
	for _, email := range []string{"a@examportal.local", "b@examportal.local"} {
		_, err := svc.RegisterAdmin(context.Background(), &dto.AdminRegisterRequest{
			FullName: "Admin", Email: email, Password: "secret1",
		})
		require.NoError(t, err)
	}

	admins, err := svc.ListAdmins(context.Background())
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	token, err := svc.LoginAdmin(context.Background(), &dto.AdminLoginRequest{
		Email: "a@examportal.local", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleAdmin), token.Role)
}
