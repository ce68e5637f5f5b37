package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
)

// In-memory stores backing the service tests. They mirror the guard semantics
// of the SQL repositories: unique pairs, status-guarded transitions.

type fakeStudentStore struct {
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, s *models.Student) error {
	for _, existing := range f.students {
		if existing.Mobile == s.Mobile {
			return repositories.ErrDuplicateMobile
		}
	}
	f.nextID++
	s.ID = f.nextID
	stored := *s
	f.students[s.ID] = &stored
	return nil
}

func (f *fakeStudentStore) GetByMobile(_ context.Context, mobile string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Mobile == mobile {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) List(_ context.Context) ([]models.Student, error) {
	var out []models.Student
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, nil
}

type fakeAdminStore struct {
	nextID int64
	admins map[int64]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[int64]*models.Admin)}
}

func (f *fakeAdminStore) Create(_ context.Context, a *models.Admin) error {
	for _, existing := range f.admins {
		if existing.Email == a.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	f.nextID++
	a.ID = f.nextID
	stored := *a
	f.admins[a.ID] = &stored
	return nil
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminStore) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) List(_ context.Context) ([]models.Admin, error) {
	var out []models.Admin
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

type fakeEnquiryStore struct {
	nextID    int64
	enquiries map[int64]*models.Enquiry
}

func newFakeEnquiryStore() *fakeEnquiryStore {
	return &fakeEnquiryStore{enquiries: make(map[int64]*models.Enquiry)}
}

func (f *fakeEnquiryStore) Create(_ context.Context, e *models.Enquiry) error {
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	stored := *e
	f.enquiries[e.ID] = &stored
	return nil
}

func (f *fakeEnquiryStore) List(_ context.Context, filter *dto.EnquiryListFilter) ([]models.Enquiry, error) {
	var out []models.Enquiry
	for _, e := range f.enquiries {
		if filter != nil {
			if filter.Status != nil && e.Status != *filter.Status {
				continue
			}
			if filter.Search != "" &&
				!strings.Contains(e.FullName, filter.Search) &&
				!strings.Contains(e.MobileNumber, filter.Search) {
				continue
			}
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEnquiryStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.enquiries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.enquiries, id)
	return nil
}

type fakeEnrollmentStore struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[int64]*models.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *models.Enrollment) error {
	for _, existing := range f.enrollments {
		if existing.StudentID == e.StudentID && existing.TestID == e.TestID {
			return repositories.ErrDuplicateEnrollment
		}
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	stored := *e
	f.enrollments[e.ID] = &stored
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentStore) GetByStudentAndTest(_ context.Context, studentID, testID int64) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.TestID == testID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) Decide(_ context.Context, id int64, status models.EnrollmentStatus, adminID int64, notes string, decidedAt time.Time, expiresAt *time.Time) (bool, error) {
	e, ok := f.enrollments[id]
	if !ok || e.Status != models.EnrollmentPending {
		return false, nil
	}
	e.Status = status
	e.AdminNotes = notes
	e.ApprovedBy = &adminID
	e.ApprovedAt = &decidedAt
	e.ExpiresAt = expiresAt
	return true, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) List(_ context.Context, filter *dto.EnrollmentListFilter) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range f.enrollments {
		if filter != nil && filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

// seed inserts an enrollment directly, bypassing Create's duplicate check.
func (f *fakeEnrollmentStore) seed(e models.Enrollment) *models.Enrollment {
	f.nextID++
	e.ID = f.nextID
	f.enrollments[e.ID] = &e
	return &e
}

type fakeTestStore struct {
	tests map[int64]*models.Test
}

func newFakeTestStore(tests ...models.Test) *fakeTestStore {
	f := &fakeTestStore{tests: make(map[int64]*models.Test)}
	for i := range tests {
		t := tests[i]
		f.tests[t.ID] = &t
	}
	return f
}

func (f *fakeTestStore) Create(_ context.Context, t *models.Test) error {
	f.tests[t.ID] = t
	return nil
}

func (f *fakeTestStore) GetByID(_ context.Context, id int64) (*models.Test, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTestStore) List(_ context.Context, programID *int64, activeOnly bool) ([]models.Test, error) {
	var out []models.Test
	for _, t := range f.tests {
		if programID != nil && t.ProgramID != *programID {
			continue
		}
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTestStore) Update(_ context.Context, t *models.Test) error {
	f.tests[t.ID] = t
	return nil
}

func (f *fakeTestStore) Delete(_ context.Context, id int64) error {
	delete(f.tests, id)
	return nil
}

type fakeQuestionStore struct {
	questions map[int64][]models.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[int64][]models.Question)}
}

func (f *fakeQuestionStore) Create(_ context.Context, q *models.Question) error {
	f.questions[q.TestID] = append(f.questions[q.TestID], *q)
	return nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id int64) (*models.Question, error) {
	for _, qs := range f.questions {
		for i := range qs {
			if qs[i].ID == id {
				cp := qs[i]
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeQuestionStore) ListByTest(_ context.Context, testID int64) ([]models.Question, error) {
	return append([]models.Question(nil), f.questions[testID]...), nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id int64) error {
	for testID, qs := range f.questions {
		for i := range qs {
			if qs[i].ID == id {
				f.questions[testID] = append(qs[:i], qs[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// fakeSubmissionStore implements both SubmissionStore and AnswerStore.
type fakeSubmissionStore struct {
	nextID      int64
	submissions map[int64]*models.Submission
	answers     map[int64][]models.Answer
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{
		submissions: make(map[int64]*models.Submission),
		answers:     make(map[int64][]models.Answer),
	}
}

func (f *fakeSubmissionStore) InsertIfAbsent(_ context.Context, s *models.Submission) (bool, error) {
	for _, existing := range f.submissions {
		if existing.StudentID == s.StudentID && existing.TestID == s.TestID {
			return false, nil
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	f.submissions[s.ID] = &stored
	return true, nil
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id int64) (*models.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionStore) GetByStudentAndTest(_ context.Context, studentID, testID int64) (*models.Submission, error) {
	for _, s := range f.submissions {
		if s.StudentID == studentID && s.TestID == testID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionStore) SubmitWithAnswers(_ context.Context, submissionID int64, answers []models.Answer, submittedAt time.Time, timeTaken int) error {
	s, ok := f.submissions[submissionID]
	if !ok || s.Status != models.SubmissionInProgress {
		return repositories.ErrSubmissionNotInProgress
	}
	s.Status = models.SubmissionSubmitted
	s.SubmittedAt = &submittedAt
	s.TimeTaken = &timeTaken
	f.answers[submissionID] = append([]models.Answer(nil), answers...)
	return nil
}

func (f *fakeSubmissionStore) ReviewWithScores(_ context.Context, update repositories.ReviewUpdate) (float64, float64, error) {
	s, ok := f.submissions[update.SubmissionID]
	if !ok || !s.Status.Reviewable() {
		return 0, 0, repositories.ErrSubmissionNotReviewable
	}
	s.Status = models.SubmissionUnderReview
	s.AdminNotes = update.AdminNotes

	answers := f.answers[update.SubmissionID]
	for _, score := range update.Scores {
		for i := range answers {
			if answers[i].QuestionID == score.QuestionID {
				marks := score.MarksObtained
				correct := score.IsCorrect
				answers[i].MarksObtained = &marks
				answers[i].IsCorrect = &correct
				answers[i].AdminNotes = score.AdminNotes
			}
		}
	}

	var total float64
	if update.TotalScore != nil {
		total = *update.TotalScore
	} else {
		for i := range answers {
			if answers[i].MarksObtained != nil {
				total += *answers[i].MarksObtained
			}
		}
	}
	percentage := models.ComputePercentage(total, s.MaxScore)
	s.TotalScore = &total
	s.Percentage = &percentage
	s.ReviewedBy = &update.AdminID
	s.ReviewedAt = &update.ReviewedAt
	return total, percentage, nil
}

func (f *fakeSubmissionStore) Release(_ context.Context, id int64, adminNotes string, releasedAt time.Time) (*models.Submission, error) {
	s, ok := f.submissions[id]
	if !ok || s.Status != models.SubmissionUnderReview {
		return nil, repositories.ErrSubmissionNotReviewed
	}
	s.Status = models.SubmissionResultReleased
	if adminNotes != "" {
		s.AdminNotes = adminNotes
	}
	s.ResultReleasedAt = &releasedAt
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionStore) ListForReview(_ context.Context, filter *dto.SubmissionListFilter) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.submissions {
		if filter != nil && filter.Status != nil {
			if s.Status != *filter.Status {
				continue
			}
		} else if !s.Status.Reviewable() {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSubmissionStore) ListByStudent(_ context.Context, studentID int64) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.submissions {
		if s.StudentID != studentID {
			continue
		}
		if s.Status == models.SubmissionSubmitted || s.Status == models.SubmissionResultReleased {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) Stats(_ context.Context, testID, programID *int64) (*repositories.SubmissionStats, error) {
	stats := &repositories.SubmissionStats{}
	var scoreSum, pctSum float64
	for _, s := range f.submissions {
		if testID != nil && s.TestID != *testID {
			continue
		}
		stats.Total++
		switch s.Status {
		case models.SubmissionInProgress:
			stats.InProgress++
		case models.SubmissionSubmitted:
			stats.Submitted++
		case models.SubmissionUnderReview:
			stats.UnderReview++
		case models.SubmissionResultReleased:
			stats.Released++
			if s.TotalScore != nil {
				scoreSum += *s.TotalScore
			}
			if s.Percentage != nil {
				pctSum += *s.Percentage
			}
		}
	}
	if stats.Released > 0 {
		stats.AverageScore = scoreSum / float64(stats.Released)
		stats.AveragePercentage = pctSum / float64(stats.Released)
	}
	return stats, nil
}

func (f *fakeSubmissionStore) ListBySubmission(_ context.Context, submissionID int64) ([]models.Answer, error) {
	return append([]models.Answer(nil), f.answers[submissionID]...), nil
}

// seed inserts a submission directly.
func (f *fakeSubmissionStore) seed(s models.Submission) *models.Submission {
	f.nextID++
	s.ID = f.nextID
	f.submissions[s.ID] = &s
	return &s
}
