package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasadasw/examportal/internal/app/models"
)

// AnswerRepository handles student answer read operations. Writes happen
// through the SubmissionRepository transactions that own the attempt.
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// ListBySubmission returns a submission's answers joined with their
// questions, in question order.
func (r *AnswerRepository) ListBySubmission(ctx context.Context, submissionID int64) ([]models.Answer, error) {
	query := `
		SELECT a.id, a.submission_id, a.question_id, a.selected_option, a.is_correct,
		       a.marks_obtained, a.max_marks, a.admin_notes, a.reviewed_by, a.reviewed_at,
		       a.created_at, a.updated_at,
		       q.id, q.test_id, q.question_text, q.question_image,
		       q.option_a, q.option_b, q.option_c, q.option_d,
		       q.option_a_image, q.option_b_image, q.option_c_image, q.option_d_image,
		       q.correct_option, q.marks
		FROM student_answers a
		JOIN questions q ON a.question_id = q.id
		WHERE a.submission_id = $1
		ORDER BY q.id`

	rows, err := r.db.Query(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission answers: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		var q models.Question
		var adminNotes sql.NullString
		var qText, qImage, optA, optB, optC, optD sql.NullString
		var optAImg, optBImg, optCImg, optDImg sql.NullString

		err := rows.Scan(&a.ID, &a.SubmissionID, &a.QuestionID, &a.SelectedOption, &a.IsCorrect,
			&a.MarksObtained, &a.MaxMarks, &adminNotes, &a.ReviewedBy, &a.ReviewedAt,
			&a.CreatedAt, &a.UpdatedAt,
			&q.ID, &q.TestID, &qText, &qImage,
			&optA, &optB, &optC, &optD,
			&optAImg, &optBImg, &optCImg, &optDImg,
			&q.CorrectOption, &q.Marks)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}

		a.AdminNotes = adminNotes.String
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
		a.Question = &q
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
