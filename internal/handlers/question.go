package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/dto"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/forms"
	"github.com/yukikurage/qa-forum/internal/middleware"
	"github.com/yukikurage/qa-forum/internal/models"
	"github.com/yukikurage/qa-forum/internal/permissions"
	"github.com/yukikurage/qa-forum/internal/services"
	"github.com/yukikurage/qa-forum/internal/utils"
)

// QuestionHandler serves question lists and the question life cycle.
type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// Index lists questions newest first
func (h *QuestionHandler) Index(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	questions, total, err := h.questionService.List(params)
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}

	render(c, http.StatusOK, "index.html", gin.H{
		"Questions":  dto.ToQuestionViews(questions),
		"Pagination": utils.NewPaginationResponse(params, total),
	})
}

// Search lists questions matching ?q=
func (h *QuestionHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	questions, err := h.questionService.Search(query)
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}

	render(c, http.StatusOK, "search.html", gin.H{
		"Title":     "Search",
		"Query":     query,
		"Questions": dto.ToQuestionViews(questions),
	})
}

// Tagged lists questions carrying the tag in the URL
func (h *QuestionHandler) Tagged(c *gin.Context) {
	tag := c.Param("tag")

	questions, err := h.questionService.Tagged(tag)
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}

	render(c, http.StatusOK, "tagged.html", gin.H{
		"Title":     "Tagged " + tag,
		"Tag":       tag,
		"Questions": dto.ToQuestionViews(questions),
	})
}

// Show renders a question with its answers and the answer form
func (h *QuestionHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return
	}
	renderQuestionPage(c, h.questionService, id, http.StatusOK, forms.AnswerForm{}, forms.FieldErrors{})
}

// renderQuestionPage is shared with the answer handler, which re-renders the
// page when an answer does not validate.
func renderQuestionPage(c *gin.Context, svc *services.QuestionService, id uint64, status int, form forms.AnswerForm, errs forms.FieldErrors) {
	question, answers, err := svc.GetWithAnswers(id)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			apperrors.NotFound(c)
			return
		}
		apperrors.InternalError(c, err)
		return
	}

	render(c, status, "question.html", gin.H{
		"Title":    question.Title,
		"Question": dto.ToQuestionView(*question),
		"Answers":  dto.ToAnswerViews(answers),
		"IsOwner":  permissions.IsOwner(middleware.CurrentActor(c), question.OwnerID),
		"Form":     form,
		"Errors":   errs,
	})
}

// AskPage shows an empty question form
func (h *QuestionHandler) AskPage(c *gin.Context) {
	h.renderQuestionForm(c, nil, forms.QuestionForm{}, forms.FieldErrors{})
}

// Ask creates a question owned by the current user
func (h *QuestionHandler) Ask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var form forms.QuestionForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	if errs := form.Validate(); errs.Any() {
		h.renderQuestionForm(c, nil, form, errs)
		return
	}

	tags, _ := form.TagNames()
	question, err := h.questionService.Ask(userID, services.QuestionInput{
		Title: form.Title,
		Text:  form.Text,
		Tags:  tags,
	})
	if err != nil {
		apperrors.InternalError(c, err)
		return
	}

	redirectAfterPost(c, questionURL(question.ID))
}

// EditPage shows the question form filled with the current values
func (h *QuestionHandler) EditPage(c *gin.Context) {
	question, ok := h.loadQuestion(c)
	if !ok {
		return
	}

	form := forms.QuestionForm{
		Title: question.Title,
		Text:  question.Text,
		Tags:  strings.Join(question.TagNames(), ", "),
	}
	h.renderQuestionForm(c, question, form, forms.FieldErrors{})
}

// Edit saves title, text and replaces the tag set
func (h *QuestionHandler) Edit(c *gin.Context) {
	question, ok := h.loadQuestion(c)
	if !ok {
		return
	}

	var form forms.QuestionForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.BadRequest(c, "Invalid form submission")
		return
	}
	if errs := form.Validate(); errs.Any() {
		h.renderQuestionForm(c, question, form, errs)
		return
	}

	tags, _ := form.TagNames()
	if _, err := h.questionService.Edit(question.ID, services.QuestionInput{
		Title: form.Title,
		Text:  form.Text,
		Tags:  tags,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	redirectAfterPost(c, questionURL(question.ID))
}

// DeletePage asks for confirmation
func (h *QuestionHandler) DeletePage(c *gin.Context) {
	question, ok := h.loadQuestion(c)
	if !ok {
		return
	}

	render(c, http.StatusOK, "question_delete.html", gin.H{
		"Title":    "Delete question",
		"Question": dto.ToQuestionView(*question),
	})
}

// Delete removes the question and its answers
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return
	}

	if err := h.questionService.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}

	redirectAfterPost(c, "/")
}

func (h *QuestionHandler) loadQuestion(c *gin.Context) (*models.Question, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		apperrors.NotFound(c)
		return nil, false
	}

	question, err := h.questionService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return question, true
}

func (h *QuestionHandler) renderQuestionForm(c *gin.Context, question *models.Question, form forms.QuestionForm, errs forms.FieldErrors) {
	data := gin.H{
		"Title":  "Ask a question",
		"Form":   form,
		"Errors": errs,
	}
	if question != nil {
		view := dto.ToQuestionView(*question)
		data["Title"] = "Edit question"
		data["Question"] = &view
	}
	render(c, http.StatusOK, "ask.html", data)
}

func (h *QuestionHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrQuestionNotFound) {
		apperrors.NotFound(c)
		return
	}
	apperrors.InternalError(c, err)
}
