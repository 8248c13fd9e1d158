package login

import (
	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type LoginHandler struct {
	service *LoginService
	board   leaderboard.Service
}

// Form GET /login/
// @Summary 登录表单
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /login/ [get]
func (h *LoginHandler) Form(c *gin.Context) {
	dto.SuccessResponse(c, gin.H{
		"form":    gin.H{"fields": []string{"username", "password"}},
		"sidebar": leaderboard.SidebarOrEmpty(c.Request.Context(), h.board),
	})
}

// Login POST /login/
// @Summary 用户登录
// @Description 用户名或邮箱登录，成功后写入 access_token Cookie
// @Tags 认证
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string true "用户名或邮箱"
// @Param password formData string true "密码"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Failure 401 {object} response.Response
// @Router /login/ [post]
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	found, bizErr := h.service.Authenticate(c.Request.Context(), req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := user.IssueSession(c, found); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorMessage("failed to start session"),
			response.WithError(err),
		))
		return
	}

	dto.SuccessResponse(c, LoginResponse{RedirectURL: "/"})
}
