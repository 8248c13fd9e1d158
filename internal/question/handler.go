package question

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/middleware"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type Handler struct {
	service Service
	board   leaderboard.Service
}

func NewHandler(service Service, board leaderboard.Service) *Handler {
	return &Handler{service: service, board: board}
}

// Index GET /
// @Summary 最新问题列表
// @Tags 问题
// @Produce json
// @Param page query int false "页码"
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page, err := h.service.ListNew(c.Request.Context(), ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, gin.H{"questions": page})
}

// Hot GET /hot/
// @Summary 热门问题列表
// @Tags 问题
// @Produce json
// @Param page query int false "页码"
// @Success 200 {object} response.Response
// @Router /hot/ [get]
func (h *Handler) Hot(c *gin.Context) {
	page, err := h.service.ListHot(c.Request.Context(), ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, gin.H{"questions": page})
}

// Tag GET /tag/:name/
// @Summary 按标签列出问题
// @Tags 问题
// @Produce json
// @Param name path string true "标签名"
// @Param page query int false "页码"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tag/{name}/ [get]
func (h *Handler) Tag(c *gin.Context) {
	result, err := h.service.ListByTag(c.Request.Context(), c.Param("name"), ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, gin.H{"tag": result.Tag, "questions": result.Questions})
}

// Detail GET /question/:id/
// @Summary 问题详情
// @Tags 问题
// @Produce json
// @Param id path int true "问题 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /question/{id}/ [get]
func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.handleError(c, ErrQuestionNotFound)
		return
	}

	viewerID, _ := middleware.CurrentUserID(c)
	detail, err := h.service.Detail(c.Request.Context(), uint(id), viewerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, gin.H{
		"question":      detail.Question,
		"answers":       detail.Answers,
		"answers_count": detail.AnswersCount,
		"is_author":     detail.IsAuthor,
		"vote":          detail.Vote,
	})
}

// AskForm GET /ask/
// @Summary 提问表单
// @Tags 问题
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /ask/ [get]
func (h *Handler) AskForm(c *gin.Context) {
	h.render(c, gin.H{"form": gin.H{"fields": []string{"title", "text", "tags"}}})
}

// Ask POST /ask/
// @Summary 提问
// @Tags 问题
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param title formData string true "标题"
// @Param text formData string true "内容"
// @Param tags formData string false "逗号分隔的标签"
// @Success 200 {object} response.Response{data=AskResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /ask/ [post]
func (h *Handler) Ask(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("authentication required"),
		))
		return
	}

	var req AskRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.Ask(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

func (h *Handler) render(c *gin.Context, data gin.H) {
	data["sidebar"] = leaderboard.SidebarOrEmpty(c.Request.Context(), h.board)
	dto.SuccessResponse(c, data)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrTagNotFound):
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage(err.Error()),
		))
	case errors.Is(err, ErrTagTooLong):
		dto.FormErrorResponse(c, response.InvalidParameter, "form_invalid", err.Error())
	default:
		log.Printf("[question] %v", err)
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorMessage("internal server error"),
			response.WithError(err),
		))
	}
}
