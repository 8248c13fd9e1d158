package logout

import (
	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/internal/cache"
)

// RegisterRoutes optionalAuth 解析令牌以便注销，未登录时只清除 cookie
func RegisterRoutes(r gin.IRouter, revoked cache.Cache, optionalAuth gin.HandlerFunc) {
	handler := &LogoutHandler{revoked: revoked}
	r.POST("/logout/", optionalAuth, handler.Logout)
}
