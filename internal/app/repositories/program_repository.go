package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
)

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create inserts a new program
func (r *ProgramRepository) Create(ctx context.Context, p *models.Program) error {
	query := `
		INSERT INTO programs (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, p.Name, nullString(p.Description)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert program: %w", err)
	}
	return nil
}

// GetByID retrieves a program by id. Returns nil when absent.
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	var p models.Program
	var description sql.NullString

	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM programs WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	p.Description = description.String
	return &p, nil
}

// List returns all programs, newest first.
func (r *ProgramRepository) List(ctx context.Context) ([]models.Program, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM programs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	for rows.Next() {
		var p models.Program
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		p.Description = description.String
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// Update updates a program's fields
func (r *ProgramRepository) Update(ctx context.Context, p *models.Program) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE programs SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3`, p.Name, nullString(p.Description), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a program
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
