package logout

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/middleware"
	"github.com/Jam721/VkWebHomework/internal/pkg"
	"github.com/Jam721/VkWebHomework/internal/user"
)

type LogoutHandler struct {
	revoked cache.Cache
}

// Logout POST /logout/
// 清除 cookie，并在令牌剩余有效期内将 jti 记为已注销
// @Summary 用户退出登录
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout/ [post]
func (h *LogoutHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.CurrentClaims(c); ok && claims.ID != "" {
		if ttl := claims.RemainingTTL(); ttl > 0 {
			if err := h.revoked.Set(c.Request.Context(), pkg.RevokedTokenKey(claims.ID), true, ttl); err != nil {
				log.Printf("[logout] revoke token: %v", err)
			}
		}
	}

	user.ClearSession(c)

	dto.SuccessResponse(c, gin.H{"redirect_url": "/"})
}
