package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/dto"
	"github.com/Jam721/VkWebHomework/internal/pkg"
	"github.com/Jam721/VkWebHomework/packages/response"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

var (
	errNoToken      = errors.New("authentication required")
	errTokenFormat  = errors.New("malformed authorization header")
	errTokenRevoked = errors.New("token has been revoked")
)

// TokenFromRequest 优先读取 cookie，其次 Authorization: Bearer
func TokenFromRequest(c *gin.Context) (string, error) {
	tokenString, err := c.Cookie(config.Conf.JWT.CookieName)
	if err == nil && tokenString != "" {
		return tokenString, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errNoToken
	}
	if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) <= 7 {
		return "", errTokenFormat
	}
	return authHeader[7:], nil
}

func parseToken(c *gin.Context, revoked cache.Cache) (*pkg.Claims, error) {
	tokenString, err := TokenFromRequest(c)
	if err != nil {
		return nil, err
	}

	claims, err := pkg.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	if isRevoked(c.Request.Context(), revoked, claims.ID) {
		return nil, errTokenRevoked
	}
	return claims, nil
}

func isRevoked(ctx context.Context, revoked cache.Cache, jti string) bool {
	if revoked == nil || jti == "" {
		return false
	}
	var marker bool
	found, err := revoked.Get(ctx, pkg.RevokedTokenKey(jti), &marker)
	if err != nil {
		log.Printf("[auth] revocation lookup failed: %v", err)
		return false
	}
	return found
}

func setUser(c *gin.Context, claims *pkg.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextClaims, claims)
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(revoked cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, revoked)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth(revoked cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseToken(c, revoked); err == nil {
			setUser(c, claims)
		}
		c.Next()
	}
}

// CurrentUserID 返回当前登录用户，未登录时 ok 为 false
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentClaims 当前请求的令牌声明
func CurrentClaims(c *gin.Context) (*pkg.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*pkg.Claims)
	return claims, ok
}
