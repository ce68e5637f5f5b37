package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/dberrors"
	"github.com/prasadasw/examportal/internal/pkg/helpers"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// Enrollment error types
var (
	ErrDuplicateEnrollment = errors.New("enrollment already exists for this student and test")
)

const enrollmentUniqueConstraint = "unique_student_test_enrollment"

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending enrollment. The unique (student_id, test_id)
// constraint is the concurrency guard against duplicate requests; a violation
// is reported as ErrDuplicateEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	query := `
		INSERT INTO test_enrollments (student_id, test_id, status, request_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, e.StudentID, e.TestID, e.Status, nullString(e.RequestMessage)).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentUniqueConstraint) {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment by id, with student/test/program names for
// display. Returns nil when absent.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.test_id, e.status, e.request_message, e.admin_notes,
		       e.approved_by, e.approved_at, e.expires_at, e.created_at, e.updated_at,
		       s.first_name || ' ' || s.last_name, t.title, p.name
		FROM test_enrollments e
		JOIN students s ON e.student_id = s.id
		JOIN tests t ON e.test_id = t.id
		JOIN programs p ON t.program_id = p.id
		WHERE e.id = $1`

	e, err := scanEnrollment(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return e, nil
}

// GetByStudentAndTest retrieves the single enrollment for a (student, test)
// pair. Returns nil when absent.
func (r *EnrollmentRepository) GetByStudentAndTest(ctx context.Context, studentID, testID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, test_id, status, request_message, admin_notes,
		       approved_by, approved_at, expires_at, created_at, updated_at
		FROM test_enrollments
		WHERE student_id = $1 AND test_id = $2`

	e, err := scanEnrollment(r.db.QueryRow(ctx, query, studentID, testID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return e, nil
}

// Decide applies a one-shot admin decision. The status guard lives in the
// WHERE clause so two concurrent decisions cannot both succeed; the returned
// bool reports whether this call won the transition.
func (r *EnrollmentRepository) Decide(ctx context.Context, id int64, status models.EnrollmentStatus, adminID int64, notes string, decidedAt time.Time, expiresAt *time.Time) (bool, error) {
	query := `
		UPDATE test_enrollments
		SET status = $1, admin_notes = $2, approved_by = $3, approved_at = $4,
		    expires_at = $5, updated_at = $4
		WHERE id = $6 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, query, status, nullString(notes), adminID, decidedAt, expiresAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to update enrollment status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByStudent returns a student's enrollment requests, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.test_id, e.status, e.request_message, e.admin_notes,
		       e.approved_by, e.approved_at, e.expires_at, e.created_at, e.updated_at,
		       t.title, p.name
		FROM test_enrollments e
		JOIN tests t ON e.test_id = t.id
		JOIN programs p ON t.program_id = p.id
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var reqMsg, adminNotes, title, program sql.NullString
		err := rows.Scan(&e.ID, &e.StudentID, &e.TestID, &e.Status, &reqMsg, &adminNotes,
			&e.ApprovedBy, &e.ApprovedAt, &e.ExpiresAt, &e.CreatedAt, &e.UpdatedAt,
			&title, &program)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		e.RequestMessage = reqMsg.String
		e.AdminNotes = adminNotes.String
		e.TestTitle = title.String
		e.ProgramName = program.String
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// List returns enrollment requests for admins, optionally filtered by
// status, test or program, newest first.
func (r *EnrollmentRepository) List(ctx context.Context, filter *dto.EnrollmentListFilter) ([]models.Enrollment, error) {
	baseSelect := r.sb.Select(
		"e.id", "e.student_id", "e.test_id", "e.status", "e.request_message", "e.admin_notes",
		"e.approved_by", "e.approved_at", "e.expires_at", "e.created_at", "e.updated_at",
		"s.first_name || ' ' || s.last_name AS student_name",
		"t.title", "p.name",
	).
		From("test_enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("tests t ON e.test_id = t.id").
		Join("programs p ON t.program_id = p.id").
		OrderBy("e.created_at DESC")

	page, pageSize := helpers.DefaultPage, helpers.DefaultPageSize
	if filter != nil {
		if filter.Status != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"e.status": *filter.Status})
		}
		if filter.TestID != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"e.test_id": *filter.TestID})
		}
		if filter.ProgramID != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"t.program_id": *filter.ProgramID})
		}
		page, pageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)
	}
	baseSelect = baseSelect.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building enrollment list SQL")
		return nil, fmt.Errorf("failed to build enrollment list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var reqMsg, adminNotes, studentName, title, program sql.NullString
		err := rows.Scan(&e.ID, &e.StudentID, &e.TestID, &e.Status, &reqMsg, &adminNotes,
			&e.ApprovedBy, &e.ApprovedAt, &e.ExpiresAt, &e.CreatedAt, &e.UpdatedAt,
			&studentName, &title, &program)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		e.RequestMessage = reqMsg.String
		e.AdminNotes = adminNotes.String
		e.StudentName = studentName.String
		e.TestTitle = title.String
		e.ProgramName = program.String
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func scanEnrollment(row pgx.Row, withNames bool) (*models.Enrollment, error) {
	var e models.Enrollment
	var reqMsg, adminNotes sql.NullString
	var studentName, title, program sql.NullString

	dest := []interface{}{
		&e.ID, &e.StudentID, &e.TestID, &e.Status, &reqMsg, &adminNotes,
		&e.ApprovedBy, &e.ApprovedAt, &e.ExpiresAt, &e.CreatedAt, &e.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &studentName, &title, &program)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	e.RequestMessage = reqMsg.String
	e.AdminNotes = adminNotes.String
	e.StudentName = studentName.String
	e.TestTitle = title.String
	e.ProgramName = program.String
	return &e, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
