package models

import "time"

// Question belongs to a Test: four options, a correct option and per-question
// marks. Option and question images are stable file references.
type Question struct {
	ID            int64     `json:"id"`
	TestID        int64     `json:"testId"`
	QuestionText  string    `json:"questionText,omitempty"`
	QuestionImage string    `json:"questionImage,omitempty"`
	OptionA       string    `json:"optionA,omitempty"`
	OptionB       string    `json:"optionB,omitempty"`
	OptionC       string    `json:"optionC,omitempty"`
	OptionD       string    `json:"optionD,omitempty"`
	OptionAImage  string    `json:"optionAImage,omitempty"`
	OptionBImage  string    `json:"optionBImage,omitempty"`
	OptionCImage  string    `json:"optionCImage,omitempty"`
	OptionDImage  string    `json:"optionDImage,omitempty"`
	CorrectOption string    `json:"correctOption,omitempty"`
	Marks         int       `json:"marks"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
