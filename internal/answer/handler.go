package answer

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/middleware"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MarkCorrect POST /mark-correct
// @Summary 标记正确答案
// @Description 仅问题作者可操作，再次标记同一答案则取消
// @Tags 回答
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param question_id formData int true "问题 ID"
// @Param answer_id formData int true "回答 ID"
// @Success 200 {object} response.Response{data=MarkCorrectResult}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mark-correct [post]
func (h *Handler) MarkCorrect(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.handleError(c, errUnauthenticated)
		return
	}

	var req MarkCorrectRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.MarkCorrect(c.Request.Context(), userID, req.QuestionID, req.AnswerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Create POST /answer/:id/
// @Summary 回答问题
// @Tags 回答
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "问题 ID"
// @Param text formData string true "回答内容"
// @Success 200 {object} response.Response{data=CreateAnswerResult}
// @Failure 404 {object} response.Response
// @Router /answer/{id}/ [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		h.handleError(c, errUnauthenticated)
		return
	}

	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.handleError(c, ErrQuestionNotFound)
		return
	}

	var req CreateAnswerRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.CreateAnswer(c.Request.Context(), userID, uint(questionID), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

var errUnauthenticated = errors.New("authentication required")

func (h *Handler) handleError(c *gin.Context, err error) {
	code := response.Fail
	switch {
	case errors.Is(err, errUnauthenticated):
		code = response.Unauthorized
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrAnswerNotFound):
		code = response.NotFound
	case errors.Is(err, ErrNotAuthor):
		code = response.Forbidden
	default:
		log.Printf("[answer] %v", err)
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorMessage("internal server error"),
			response.WithError(err),
		))
		return
	}

	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(code),
		response.WithErrorMessage(err.Error()),
	))
}
