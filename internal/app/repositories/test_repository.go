package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// TestRepository handles test database operations
type TestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTestRepository creates a new TestRepository
func NewTestRepository(db *pgxpool.Pool) *TestRepository {
	return &TestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new test
func (r *TestRepository) Create(ctx context.Context, t *models.Test) error {
	query := `
		INSERT INTO tests (program_id, title, description, duration, total_marks, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, t.ProgramID, t.Title, nullString(t.Description),
		t.Duration, t.TotalMarks, t.Active).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert test: %w", err)
	}
	return nil
}

// GetByID retrieves a test with its program name. Returns nil when absent.
func (r *TestRepository) GetByID(ctx context.Context, id int64) (*models.Test, error) {
	query := `
		SELECT t.id, t.program_id, t.title, t.description, t.duration, t.total_marks,
		       t.active, t.created_at, t.updated_at, p.name
		FROM tests t
		JOIN programs p ON t.program_id = p.id
		WHERE t.id = $1`

	var t models.Test
	var description sql.NullString
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.ProgramID, &t.Title, &description,
		&t.Duration, &t.TotalMarks, &t.Active, &t.CreatedAt, &t.UpdatedAt, &t.ProgramName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	t.Description = description.String
	return &t, nil
}

// List returns tests, optionally filtered by program and active flag.
func (r *TestRepository) List(ctx context.Context, programID *int64, activeOnly bool) ([]models.Test, error) {
	baseSelect := r.sb.Select(
		"t.id", "t.program_id", "t.title", "t.description", "t.duration",
		"t.total_marks", "t.active", "t.created_at", "t.updated_at", "p.name",
	).
		From("tests t").
		Join("programs p ON t.program_id = p.id").
		OrderBy("t.created_at DESC")

	if programID != nil {
		baseSelect = baseSelect.Where(squirrel.Eq{"t.program_id": *programID})
	}
	if activeOnly {
		baseSelect = baseSelect.Where(squirrel.Eq{"t.active": true})
	}

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building test list SQL")
		return nil, fmt.Errorf("failed to build test list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tests: %w", err)
	}
	defer rows.Close()

	var tests []models.Test
	for rows.Next() {
		var t models.Test
		var description sql.NullString
		err := rows.Scan(&t.ID, &t.ProgramID, &t.Title, &description, &t.Duration,
			&t.TotalMarks, &t.Active, &t.CreatedAt, &t.UpdatedAt, &t.ProgramName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test row: %w", err)
		}
		t.Description = description.String
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// Update updates a test's fields
func (r *TestRepository) Update(ctx context.Context, t *models.Test) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tests
		SET title = $1, description = $2, duration = $3, total_marks = $4, active = $5, updated_at = NOW()
		WHERE id = $6`,
		t.Title, nullString(t.Description), t.Duration, t.TotalMarks, t.Active, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update test: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a test
func (r *TestRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
