package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/middleware"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type SettingsHandler struct {
	service  *SettingsService
	board    leaderboard.Service
	mediaURL string
}

func unauthenticated(c *gin.Context) {
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("authentication required"),
	))
}

// Get GET /settings/
// @Summary 当前用户资料
// @Tags 设置
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /settings/ [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	u, bizErr := h.service.Profile(c.Request.Context(), userID)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, gin.H{
		"profile": user.ToProfile(u, h.mediaURL),
		"form":    gin.H{"fields": []string{"email", "nickname", "avatar"}},
		"sidebar": leaderboard.SidebarOrEmpty(c.Request.Context(), h.board),
	})
}

// Update POST /settings/
// @Summary 修改个人资料
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param email formData string false "邮箱"
// @Param nickname formData string false "昵称"
// @Param avatar formData file false "头像"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /settings/ [post]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req SettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			dto.FormErrorResponse(c, response.ParseError, user.ErrorTypeFormInvalid, "invalid avatar upload")
			return
		}
		avatar = nil
	}

	u, bizErr := h.service.Update(c.Request.Context(), userID, req, avatar)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, gin.H{
		"profile":      user.ToProfile(u, h.mediaURL),
		"redirect_url": "/settings/",
	})
}
