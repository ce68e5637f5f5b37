package services

import (
	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
)

func testSummary(t *models.Test) *dto.TestSummary {
	if t == nil {
		return nil
	}
	return &dto.TestSummary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Duration:    t.Duration,
		TotalMarks:  t.TotalMarks,
		ProgramName: t.ProgramName,
	}
}

// studentQuestion strips the correct option and any grading metadata from a
// question before it reaches a student.
func studentQuestion(q *models.Question) dto.StudentQuestion {
	return dto.StudentQuestion{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		QuestionImage: q.QuestionImage,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		OptionAImage:  q.OptionAImage,
		OptionBImage:  q.OptionBImage,
		OptionCImage:  q.OptionCImage,
		OptionDImage:  q.OptionDImage,
		Marks:         q.Marks,
	}
}
