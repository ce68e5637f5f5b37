package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/services"
	"github.com/prasadasw/examportal/internal/middleware"
	"github.com/prasadasw/examportal/internal/pkg/filestorage"
)

// QuestionController handles catalog question endpoints. Questions are created
// via multipart form so each question and option can carry an image.
type QuestionController struct {
	questionService services.QuestionService
	storage         filestorage.Storage
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService, storage filestorage.Storage) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		storage:         storage,
	}
}

// Create adds a question to a test
// @Summary Create a question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param testId formData int true "Test ID"
// @Param questionText formData string false "Question text"
// @Param correctOption formData string true "Correct option (a, b, c or d)"
// @Param marks formData int true "Marks"
// @Success 201 {object} dto.APIResponse{data=models.Question}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var images services.QuestionImages
	var err error
	saved := make([]string, 0, 5)
	save := func(field string, dest *string) bool {
		var header *multipart.FileHeader
		header, _ = ctx.FormFile(field)
		if header == nil {
			return true
		}
		*dest, err = c.storage.SaveFile(header, "questions")
		if err != nil {
			return false
		}
		saved = append(saved, *dest)
		return true
	}

	ok := save("questionImage", &images.Question) &&
		save("optionAImage", &images.OptionA) &&
		save("optionBImage", &images.OptionB) &&
		save("optionCImage", &images.OptionC) &&
		save("optionDImage", &images.OptionD)
	if !ok {
		middleware.HandleAPIError(ctx, err)
		return
	}

	question, err := c.questionService.Create(ctx.Request.Context(), &req, images)
	if err != nil {
		// Remove any stored images for the failed question
		for _, ref := range saved {
			_ = c.storage.DeleteFile(ref)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse(question, "Question created"))
}

// ListByTest returns a test's questions with grading fields, for admins
// @Summary List a test's questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param testId path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Question}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{testId}/questions [get]
func (c *QuestionController) ListByTest(ctx *gin.Context) {
	testID, err := pathID(ctx, "testId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	questions, err := c.questionService.ListByTest(ctx.Request.Context(), testID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// Delete removes a question
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.questionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(nil, "Question deleted"))
}
