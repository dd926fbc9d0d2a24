package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/dto"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/forms"
	"github.com/yukikurage/qa-forum/internal/middleware"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/services"
)

// AnswerHandler serves answer creation, editing, deletion and acceptance.
type AnswerHandler struct {
	answerService   *services.AnswerService
	questionService *services.QuestionService
}

func NewAnswerHandler(answerService *services.AnswerService, questionService *services.QuestionService) *AnswerHandler {
	return &AnswerHandler{
		answerService:   answerService,
		questionService: questionService,
	}
}

// CreatePage answers GET on the creation endpoint with 404; answers are only posted
// from the question page.
func (h *AnswerHandler) CreatePage(c *gin.Context) {
	apperrors.NotFound(c)
}

// Create posts an answer to the question in the URL
func (h *AnswerHandler) Create(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return
	}
	userID, _ := middleware.GetUserID(c)

	var form forms.AnswerForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderQuestionPage(c, h.questionService, questionID, http.StatusOK, form, errs)
		return
	}

	if _, err := h.answerService.Create(userID, questionID, form.Text); err != nil {
		h.respondError(c, err)
		return
	}

	redirectAfterPost(c, questionURL(questionID))
}

// EditPage shows the answer text form
func (h *AnswerHandler) EditPage(c *gin.Context) {
	answer, ok := h.loadAnswer(c)
	if !ok {
		return
	}
	h.renderEdit(c, answer, forms.AnswerForm{Text: answer.Text}, forms.FieldErrors{})
}

// Edit saves the answer text
func (h *AnswerHandler) Edit(c *gin.Context) {
	answer, ok := h.loadAnswer(c)
	if !ok {
		return
	}

	var form forms.AnswerForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	if errs := form.Validate(); errs.Any() {
		h.renderEdit(c, answer, form, errs)
		return
	}

	if _, err := h.answerService.Edit(answer.QuestionID, answer.ID, form.Text); err != nil {
		h.respondError(c, err)
		return
	}

	redirectAfterPost(c, questionURL(answer.QuestionID))
}

// DeletePage asks for confirmation
func (h *AnswerHandler) DeletePage(c *gin.Context) {
	answer, ok := h.loadAnswer(c)
	if !ok {
		return
	}

	render(c, http.StatusOK, "answer_delete.html", gin.H{
		"Title":  "Delete answer",
		"Answer": dto.ToAnswerView(*answer),
	})
}

// Delete removes the answer and returns to its question
func (h *AnswerHandler) Delete(c *gin.Context) {
	answer, ok := h.loadAnswer(c)
	if !ok {
		return
	}

	questionID, err := h.answerService.Delete(answer.QuestionID, answer.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	redirectAfterPost(c, questionURL(questionID))
}

// Accept marks the answer as accepted when the current user owns the question.
// Everyone is sent back to the question page.
func (h *AnswerHandler) Accept(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return
	}
	answerID, ok := paramID(c, "answer_id")
	if !ok {
		apperrors.NotFound(c)
		return
	}

	applied, err := h.answerService.Accept(middleware.CurrentActor(c), questionID, answerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !applied {
		c.Redirect(http.StatusFound, questionURL(questionID))
		return
	}

	redirectAfterPost(c, questionURL(questionID))
}

func (h *AnswerHandler) loadAnswer(c *gin.Context) (*models.Answer, bool) {
	questionID, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return nil, false
	}
	answerID, ok := paramID(c, "answer_id")
	if !ok {
		apperrors.NotFound(c)
		return nil, false
	}

	answer, err := h.answerService.Get(questionID, answerID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return answer, true
}

func (h *AnswerHandler) renderEdit(c *gin.Context, answer *models.Answer, form forms.AnswerForm, errs forms.FieldErrors) {
	render(c, http.StatusOK, "answer_edit.html", gin.H{
		"Title":  "Edit answer",
		"Answer": dto.ToAnswerView(*answer),
		"Form":   form,
		"Errors": errs,
	})
}

func (h *AnswerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrAnswerNotFound),
		errors.Is(err, services.ErrAnswerQuestionMismatch):
		apperrors.NotFound(c)
	default:
		apperrors.InternalError(c, err)
	}
}
