package signup

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type SignupHandler struct {
	service *SignupService
	board   leaderboard.Service
}

// Form GET /signup/
// @Summary 注册表单
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /signup/ [get]
func (h *SignupHandler) Form(c *gin.Context) {
	dto.SuccessResponse(c, gin.H{
		"form":    gin.H{"fields": []string{"username", "email", "nickname", "password1", "password2", "avatar"}},
		"sidebar": leaderboard.SidebarOrEmpty(c.Request.Context(), h.board),
	})
}

// Signup POST /signup/
// @Summary 用户注册
// @Description 注册成功后直接登录
// @Tags 认证
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param nickname formData string true "昵称"
// @Param password1 formData string true "密码"
// @Param password2 formData string true "确认密码"
// @Param avatar formData file false "头像"
// @Success 200 {object} response.Response{data=SignupResponse}
// @Failure 400 {object} response.Response
// @Router /signup/ [post]
func (h *SignupHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	avatar, err := optionalFile(c, "avatar")
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("invalid avatar upload"),
			response.WithErrorType(user.ErrorTypeFormInvalid),
		))
		return
	}

	newUser, bizErr := h.service.Signup(c.Request.Context(), req, avatar)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := user.IssueSession(c, newUser); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorMessage("failed to start session"),
			response.WithError(err),
		))
		return
	}

	dto.SuccessResponse(c, SignupResponse{RedirectURL: "/"})
}

// optionalFile returns nil when the field was not sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}
