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
	"github.com/prasadasw/examportal/internal/db"
	"github.com/prasadasw/examportal/internal/pkg/helpers"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// Submission error types
var (
	ErrSubmissionNotInProgress = errors.New("submission is not in progress")
	ErrSubmissionNotReviewable = errors.New("submission is not available for review")
	ErrSubmissionNotReviewed   = errors.New("submission is not under review")
)

// AnswerScoreUpdate carries one per-answer grading update.
type AnswerScoreUpdate struct {
	QuestionID    int64
	MarksObtained float64
	IsCorrect     bool
	AdminNotes    string
}

// ReviewUpdate carries a full review pass over a submission.
type ReviewUpdate struct {
	SubmissionID int64
	AdminID      int64
	AdminNotes   string
	Scores       []AnswerScoreUpdate
	// TotalScore overrides the recomputed sum when set.
	TotalScore *float64
	ReviewedAt time.Time
}

// SubmissionStats is the raw aggregate over submissions.
type SubmissionStats struct {
	Total             int
	InProgress        int
	Submitted         int
	UnderReview       int
	Released          int
	AverageScore      float64
	AveragePercentage float64
}

// SubmissionRepository handles submission and answer write operations. The
// compound writes (submit, review) run inside explicit transactions so a
// partially persisted attempt is never observable.
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InsertIfAbsent atomically creates the submission unless one already exists
// for the (student, test) pair. It reports whether this call created the row;
// on a lost race the caller re-reads the winner instead of erroring.
func (r *SubmissionRepository) InsertIfAbsent(ctx context.Context, s *models.Submission) (bool, error) {
	query := `
		INSERT INTO test_submissions (student_id, test_id, enrollment_id, status, started_at, max_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, test_id) DO NOTHING
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, s.StudentID, s.TestID, s.EnrollmentID, s.Status, s.StartedAt, s.MaxScore).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert submission: %w", err)
	}
	return true, nil
}

// GetByID retrieves a submission with student/test/program display fields.
// Returns nil when absent.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := submissionSelect + ` WHERE sub.id = $1`
	return r.getOne(ctx, query, id)
}

// GetByStudentAndTest retrieves the single submission for a (student, test)
// pair. Returns nil when absent.
func (r *SubmissionRepository) GetByStudentAndTest(ctx context.Context, studentID, testID int64) (*models.Submission, error) {
	query := submissionSelect + ` WHERE sub.student_id = $1 AND sub.test_id = $2`
	return r.getOne(ctx, query, studentID, testID)
}

// SubmitWithAnswers persists the accepted answers and flips the submission to
// submitted in one transaction. The in_progress guard sits in the UPDATE's
// WHERE clause; if another submit won the race nothing is written and
// ErrSubmissionNotInProgress is returned.
func (r *SubmissionRepository) SubmitWithAnswers(ctx context.Context, submissionID int64, answers []models.Answer, submittedAt time.Time, timeTaken int) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE test_submissions
			SET status = $1, submitted_at = $2, time_taken = $3, updated_at = $2
			WHERE id = $4 AND status = $5`,
			models.SubmissionSubmitted, submittedAt, timeTaken, submissionID, models.SubmissionInProgress)
		if err != nil {
			return fmt.Errorf("failed to mark submission submitted: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSubmissionNotInProgress
		}

		for i := range answers {
			a := &answers[i]
			err := tx.QueryRow(ctx, `
				INSERT INTO student_answers (submission_id, question_id, selected_option, max_marks)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at, updated_at`,
				submissionID, a.QuestionID, a.SelectedOption, a.MaxMarks).
				Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert answer for question %d: %w", a.QuestionID, err)
			}
		}
		return nil
	})
}

// ReviewWithScores applies a review pass in one transaction: moves the
// submission to under_review, updates the graded answers, then writes the
// final total and percentage. When no explicit total is supplied the total is
// recomputed from all persisted answer rows, not only the ones in this batch.
func (r *SubmissionRepository) ReviewWithScores(ctx context.Context, update ReviewUpdate) (totalScore, percentage float64, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var maxScore int
		row := tx.QueryRow(ctx, `
			UPDATE test_submissions
			SET status = $1, admin_notes = $2, updated_at = $3
			WHERE id = $4 AND status IN ($5, $6)
			RETURNING max_score`,
			models.SubmissionUnderReview, nullString(update.AdminNotes), update.ReviewedAt,
			update.SubmissionID, models.SubmissionSubmitted, models.SubmissionUnderReview)
		if err := row.Scan(&maxScore); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSubmissionNotReviewable
			}
			return fmt.Errorf("failed to move submission under review: %w", err)
		}

		for _, score := range update.Scores {
			_, err := tx.Exec(ctx, `
				UPDATE student_answers
				SET marks_obtained = $1, is_correct = $2, admin_notes = $3,
				    reviewed_by = $4, reviewed_at = $5, updated_at = $5
				WHERE submission_id = $6 AND question_id = $7`,
				score.MarksObtained, score.IsCorrect, nullString(score.AdminNotes),
				update.AdminID, update.ReviewedAt, update.SubmissionID, score.QuestionID)
			if err != nil {
				return fmt.Errorf("failed to update answer score for question %d: %w", score.QuestionID, err)
			}
		}

		if update.TotalScore != nil {
			totalScore = *update.TotalScore
		} else {
			err := tx.QueryRow(ctx, `
				SELECT COALESCE(SUM(marks_obtained), 0)
				FROM student_answers
				WHERE submission_id = $1`,
				update.SubmissionID).Scan(&totalScore)
			if err != nil {
				return fmt.Errorf("failed to sum answer marks: %w", err)
			}
		}

		percentage = models.ComputePercentage(totalScore, maxScore)

		_, err := tx.Exec(ctx, `
			UPDATE test_submissions
			SET total_score = $1, percentage = $2, reviewed_by = $3, reviewed_at = $4, updated_at = $4
			WHERE id = $5`,
			totalScore, percentage, update.AdminID, update.ReviewedAt, update.SubmissionID)
		if err != nil {
			return fmt.Errorf("failed to write final scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return totalScore, percentage, nil
}

// Release moves an under_review submission to result_released. Only
// under_review qualifies; the guard is in the WHERE clause.
func (r *SubmissionRepository) Release(ctx context.Context, id int64, adminNotes string, releasedAt time.Time) (*models.Submission, error) {
	query := `
		UPDATE test_submissions
		SET status = $1,
		    admin_notes = COALESCE(NULLIF($2, ''), admin_notes),
		    result_released_at = $3, updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING id, total_score, max_score, percentage, result_released_at`

	var s models.Submission
	err := r.db.QueryRow(ctx, query,
		models.SubmissionResultReleased, adminNotes, releasedAt, id, models.SubmissionUnderReview).
		Scan(&s.ID, &s.TotalScore, &s.MaxScore, &s.Percentage, &s.ResultReleasedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotReviewed
		}
		return nil, fmt.Errorf("failed to release result: %w", err)
	}
	s.Status = models.SubmissionResultReleased
	return &s, nil
}

// ListForReview returns submissions for the admin review queue. Without a
// status filter it shows submitted and under_review attempts.
func (r *SubmissionRepository) ListForReview(ctx context.Context, filter *dto.SubmissionListFilter) ([]models.Submission, error) {
	baseSelect := r.sb.Select(
		"sub.id", "sub.student_id", "sub.test_id", "sub.enrollment_id", "sub.status",
		"sub.started_at", "sub.submitted_at", "sub.time_taken", "sub.total_score",
		"sub.max_score", "sub.percentage", "sub.admin_notes", "sub.reviewed_by",
		"sub.reviewed_at", "sub.result_released_at", "sub.created_at", "sub.updated_at",
		"s.first_name || ' ' || s.last_name AS student_name",
		"t.title", "p.name",
	).
		From("test_submissions sub").
		Join("students s ON sub.student_id = s.id").
		Join("tests t ON sub.test_id = t.id").
		Join("programs p ON t.program_id = p.id").
		OrderBy("sub.submitted_at DESC NULLS LAST")

	if filter != nil && filter.Status != nil {
		baseSelect = baseSelect.Where(squirrel.Eq{"sub.status": *filter.Status})
	} else {
		baseSelect = baseSelect.Where(squirrel.Eq{"sub.status": []models.SubmissionStatus{
			models.SubmissionSubmitted, models.SubmissionUnderReview,
		}})
	}
	page, pageSize := helpers.DefaultPage, helpers.DefaultPageSize
	if filter != nil {
		if filter.TestID != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"sub.test_id": *filter.TestID})
		}
		if filter.ProgramID != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"t.program_id": *filter.ProgramID})
		}
		if filter.StudentID != nil {
			baseSelect = baseSelect.Where(squirrel.Eq{"sub.student_id": *filter.StudentID})
		}
		page, pageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)
	}
	baseSelect = baseSelect.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building review list SQL")
		return nil, fmt.Errorf("failed to build review list query: %w", err)
	}

	return r.queryMany(ctx, querySql, queryArgs...)
}

// ListByStudent returns a student's completed attempts, newest first.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Submission, error) {
	query := submissionSelect + `
		WHERE sub.student_id = $1 AND sub.status IN ($2, $3)
		ORDER BY sub.submitted_at DESC`

	return r.queryMany(ctx, query, studentID, models.SubmissionSubmitted, models.SubmissionResultReleased)
}

// Stats aggregates submission counts by status plus average score and
// percentage over released results only.
func (r *SubmissionRepository) Stats(ctx context.Context, testID, programID *int64) (*SubmissionStats, error) {
	baseSelect := r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE sub.status = 'in_progress')",
		"COUNT(*) FILTER (WHERE sub.status = 'submitted')",
		"COUNT(*) FILTER (WHERE sub.status = 'under_review')",
		"COUNT(*) FILTER (WHERE sub.status = 'result_released')",
		"COALESCE(AVG(sub.total_score) FILTER (WHERE sub.status = 'result_released'), 0)",
		"COALESCE(AVG(sub.percentage) FILTER (WHERE sub.status = 'result_released'), 0)",
	).
		From("test_submissions sub").
		Join("tests t ON sub.test_id = t.id")

	if testID != nil {
		baseSelect = baseSelect.Where(squirrel.Eq{"sub.test_id": *testID})
	}
	if programID != nil {
		baseSelect = baseSelect.Where(squirrel.Eq{"t.program_id": *programID})
	}

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building stats SQL")
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var stats SubmissionStats
	err = r.db.QueryRow(ctx, querySql, queryArgs...).Scan(
		&stats.Total, &stats.InProgress, &stats.Submitted, &stats.UnderReview,
		&stats.Released, &stats.AverageScore, &stats.AveragePercentage)
	if err != nil {
		return nil, fmt.Errorf("failed to compute submission stats: %w", err)
	}
	return &stats, nil
}

const submissionSelect = `
	SELECT sub.id, sub.student_id, sub.test_id, sub.enrollment_id, sub.status,
	       sub.started_at, sub.submitted_at, sub.time_taken, sub.total_score,
	       sub.max_score, sub.percentage, sub.admin_notes, sub.reviewed_by,
	       sub.reviewed_at, sub.result_released_at, sub.created_at, sub.updated_at,
	       s.first_name || ' ' || s.last_name AS student_name,
	       t.title, p.name
	FROM test_submissions sub
	JOIN students s ON sub.student_id = s.id
	JOIN tests t ON sub.test_id = t.id
	JOIN programs p ON t.program_id = p.id`

func (r *SubmissionRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Submission, error) {
	s, err := scanSubmission(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return s, nil
}

func (r *SubmissionRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Submission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, *s)
	}
	return submissions, rows.Err()
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	var adminNotes, studentName, title, program sql.NullString

	err := row.Scan(&s.ID, &s.StudentID, &s.TestID, &s.EnrollmentID, &s.Status,
		&s.StartedAt, &s.SubmittedAt, &s.TimeTaken, &s.TotalScore,
		&s.MaxScore, &s.Percentage, &adminNotes, &s.ReviewedBy,
		&s.ReviewedAt, &s.ResultReleasedAt, &s.CreatedAt, &s.UpdatedAt,
		&studentName, &title, &program)
	if err != nil {
		return nil, err
	}

	s.AdminNotes = adminNotes.String
	s.StudentName = studentName.String
	s.TestTitle = title.String
	s.ProgramName = program.String
	return &s, nil
}
