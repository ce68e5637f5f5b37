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

// QuestionRepository handles question database operations
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	query := `
		INSERT INTO questions (test_id, question_text, question_image,
			option_a, option_b, option_c, option_d,
			option_a_image, option_b_image, option_c_image, option_d_image,
			correct_option, marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, q.TestID,
		nullString(q.QuestionText), nullString(q.QuestionImage),
		nullString(q.OptionA), nullString(q.OptionB), nullString(q.OptionC), nullString(q.OptionD),
		nullString(q.OptionAImage), nullString(q.OptionBImage), nullString(q.OptionCImage), nullString(q.OptionDImage),
		q.CorrectOption, q.Marks).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// GetByID retrieves a question by id. Returns nil when absent.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := questionSelect + ` WHERE id = $1`
	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// ListByTest returns a test's questions in insertion order, including the
// correct option. Callers serving students must strip grading fields.
func (r *QuestionRepository) ListByTest(ctx context.Context, testID int64) ([]models.Question, error) {
	query := questionSelect + ` WHERE test_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// Delete removes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const questionSelect = `
	SELECT id, test_id, question_text, question_image,
	       option_a, option_b, option_c, option_d,
	       option_a_image, option_b_image, option_c_image, option_d_image,
	       correct_option, marks, created_at, updated_at
	FROM questions`

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	var qText, qImage, optA, optB, optC, optD sql.NullString
	var optAImg, optBImg, optCImg, optDImg sql.NullString

	err := row.Scan(&q.ID, &q.TestID, &qText, &qImage,
		&optA, &optB, &optC, &optD,
		&optAImg, &optBImg, &optCImg, &optDImg,
		&q.CorrectOption, &q.Marks, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	q.QuestionText = qText.String
	q.QuestionImage = qImage.String
	q.OptionA = optA.String
	q.OptionB = optB.String
	q.OptionC = optC.String
	q.OptionD = optD.String
	q.OptionAImage = optAImg.String
	q.OptionBImage = optBImg.String
	q.OptionCImage = optCImg.String
	q.OptionDImage = optDImg.String
	return &q, nil
}
