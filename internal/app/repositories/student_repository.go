package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/pkg/dberrors"
)

// Student error types
var (
	ErrDuplicateMobile = errors.New("mobile number already registered")
)

const studentMobileConstraint = "students_mobile_key"

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student. The unique mobile constraint is reported as
// ErrDuplicateMobile.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, mobile, qualification, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, s.FirstName, s.LastName, s.Mobile,
		nullString(s.Qualification), s.PasswordHash).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentMobileConstraint) {
			return ErrDuplicateMobile
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// GetByMobile retrieves a student by mobile number. Returns nil when absent.
func (r *StudentRepository) GetByMobile(ctx context.Context, mobile string) (*models.Student, error) {
	return r.getOne(ctx, `
		SELECT id, first_name, last_name, mobile, qualification, password_hash, created_at, updated_at
		FROM students WHERE mobile = $1`, mobile)
}

// GetByID retrieves a student by id. Returns nil when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `
		SELECT id, first_name, last_name, mobile, qualification, password_hash, created_at, updated_at
		FROM students WHERE id = $1`, id)
}

// List returns all registered students, newest first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, mobile, qualification, password_hash, created_at, updated_at
		FROM students
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		var qualification sql.NullString
		err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Mobile, &qualification,
			&s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		s.Qualification = qualification.String
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *StudentRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Student, error) {
	var s models.Student
	var qualification sql.NullString

	err := r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.FirstName, &s.LastName,
		&s.Mobile, &qualification, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	s.Qualification = qualification.String
	return &s, nil
}
