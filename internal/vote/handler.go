package vote

import (
	"errors"
	"log"

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

// Like POST /like
// @Summary 点赞或取消点赞
// @Tags 投票
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id formData int true "问题 ID"
// @Success 200 {object} response.Response{data=LikeResult}
// @Failure 404 {object} response.Response
// @Router /like [post]
func (h *Handler) Like(c *gin.Context) {
	userID, req, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), userID, req.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Dislike POST /dislike
// @Summary 点踩或取消点踩
// @Tags 投票
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id formData int true "问题 ID"
// @Success 200 {object} response.Response{data=DislikeResult}
// @Failure 404 {object} response.Response
// @Router /dislike [post]
func (h *Handler) Dislike(c *gin.Context) {
	userID, req, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.service.ToggleDislike(c.Request.Context(), userID, req.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

func (h *Handler) bind(c *gin.Context) (uint, VoteRequest, bool) {
	var req VoteRequest
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("authentication required"),
		))
		return 0, req, false
	}

	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return 0, req, false
	}
	return userID, req, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuestionNotFound):
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage(err.Error()),
		))
	default:
		log.Printf("[vote] %v", err)
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("internal server error"),
			response.WithError(err),
		))
	}
}
