package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/helpers"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// EnquiryRepository handles enquiry database operations
type EnquiryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnquiryRepository creates a new EnquiryRepository
func NewEnquiryRepository(db *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new enquiry
func (r *EnquiryRepository) Create(ctx context.Context, e *models.Enquiry) error {
	query := `
		INSERT INTO enquiries (full_name, mobile_number, email_address, message, program_name, status, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, e.FullName, e.MobileNumber,
		nullString(e.EmailAddress), nullString(e.Message), e.ProgramName, e.Status, e.Source).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return nil
}

// List returns enquiries for admins, optionally filtered by status or a
// name/mobile search, newest first.
func (r *EnquiryRepository) List(ctx context.Context, filter *dto.EnquiryListFilter) ([]models.Enquiry, error) {
	baseSelect := r.sb.Select(
		"id", "full_name", "mobile_number", "email_address", "message", "program_name",
		"status", "source", "admin_notes", "contacted_at", "contacted_by",
		"created_at", "updated_at",
	).
		From("enquiries").
		OrderBy("created_at DESC")

	page, pageSize := helpers.DefaultPage, helpers.DefaultPageSize
	if filter != nil {
		if filter.Status != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			baseSelect = baseSelect.Where(squirrel.Or{
				squirrel.ILike{"full_name": pattern},
				squirrel.ILike{"mobile_number": pattern},
			})
		}
		page, pageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)
	}
	baseSelect = baseSelect.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building enquiry list SQL")
		return nil, fmt.Errorf("failed to build enquiry list query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []models.Enquiry
	for rows.Next() {
		var e models.Enquiry
		var email, message, adminNotes sql.NullString
		err := rows.Scan(&e.ID, &e.FullName, &e.MobileNumber, &email, &message, &e.ProgramName,
			&e.Status, &e.Source, &adminNotes, &e.ContactedAt, &e.ContactedBy,
			&e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry row: %w", err)
		}
		e.EmailAddress = email.String
		e.Message = message.String
		e.AdminNotes = adminNotes.String
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}

// Delete removes an enquiry. Returns pgx.ErrNoRows when absent.
func (r *EnquiryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
