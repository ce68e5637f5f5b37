package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/pkg/dberrors"
)

// Admin error types
var (
	ErrDuplicateEmail = errors.New("email already registered")
)

// AdminRepository handles admin database operations
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin account. The email is the only unique column, so
// any unique violation here is reported as ErrDuplicateEmail.
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	query := `
		INSERT INTO admins (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, a.FullName, a.Email, a.PasswordHash).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

// List returns all admin accounts, newest first.
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, email, password_hash, created_at, updated_at
		FROM admins
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// GetByEmail retrieves an admin by email. Returns nil when absent.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getOne(ctx, `
		SELECT id, full_name, email, password_hash, created_at, updated_at
		FROM admins WHERE email = $1`, email)
}

// GetByID retrieves an admin by id. Returns nil when absent.
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.getOne(ctx, `
		SELECT id, full_name, email, password_hash, created_at, updated_at
		FROM admins WHERE id = $1`, id)
}

// Count returns the number of admin accounts
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *AdminRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Admin, error) {
	var a models.Admin
	err := r.db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.FullName, &a.Email,
		&a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}
