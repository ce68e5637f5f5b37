package dto

// CreateProgramRequest is the payload for creating a program
type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProgramRequest is the payload for updating a program
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateTestRequest is the payload for creating a test
type CreateTestRequest struct {
	ProgramID   int64  `json:"programId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" binding:"required,gt=0"`
	TotalMarks  int    `json:"totalMarks" binding:"required,gte=0"`
}

// UpdateTestRequest is the payload for updating a test
type UpdateTestRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
	TotalMarks  *int    `json:"totalMarks"`
	Active      *bool   `json:"active"`
}

// CreateQuestionRequest is the multipart form payload for creating a question.
// Image files are handled separately by the controller.
type CreateQuestionRequest struct {
	TestID        int64  `form:"testId" binding:"required"`
	QuestionText  string `form:"questionText"`
	OptionA       string `form:"optionA"`
	OptionB       string `form:"optionB"`
	OptionC       string `form:"optionC"`
	OptionD       string `form:"optionD"`
	CorrectOption string `form:"correctOption" binding:"required,oneof=a b c d"`
	Marks         int    `form:"marks" binding:"required,gt=0"`
}

// StudentQuestion is a question as shown to a student during an attempt.
// The correct option and any grading metadata are never included.
type StudentQuestion struct {
	ID            int64  `json:"id"`
	QuestionText  string `json:"questionText,omitempty"`
	QuestionImage string `json:"questionImage,omitempty"`
	OptionA       string `json:"optionA,omitempty"`
	OptionB       string `json:"optionB,omitempty"`
	OptionC       string `json:"optionC,omitempty"`
	OptionD       string `json:"optionD,omitempty"`
	OptionAImage  string `json:"optionAImage,omitempty"`
	OptionBImage  string `json:"optionBImage,omitempty"`
	OptionCImage  string `json:"optionCImage,omitempty"`
	OptionDImage  string `json:"optionDImage,omitempty"`
	Marks         int    `json:"marks"`
}

// TestSummary is the brief test view embedded in lifecycle responses
type TestSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration"`
	TotalMarks  int    `json:"totalMarks"`
	ProgramName string `json:"programName,omitempty"`
}
