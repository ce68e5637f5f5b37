// Package seed creates default data on first startup.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/auth"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

const (
	defaultAdminEmail = "admin@examportal.local"
	defaultAdminName  = "Administrator"
)

// EnsureDefaultAdmin creates an admin account when none exists so a fresh
// deployment can be administered. The password comes from ADMIN_PASSWORD, or
// falls back to a development default.
func EnsureDefaultAdmin(ctx context.Context, admins *repositories.AdminRepository) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		logger.Warn().Msg("ADMIN_PASSWORD not set, seeding default admin with development password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Admin{
		FullName:     defaultAdminName,
		Email:        defaultAdminEmail,
		PasswordHash: hash,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Default admin created")
	return nil
}
