package user

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/config"
	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/pkg"
)

// IssueSession 签发访问令牌并写入 HttpOnly cookie
func IssueSession(c *gin.Context, u *userModel.User) error {
	token, _, err := pkg.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		return fmt.Errorf("sign access token: %w", err)
	}

	jwtConf := config.Conf.JWT
	c.SetCookie(jwtConf.CookieName, token, int(config.Conf.TokenTTL().Seconds()), "/", "", jwtConf.Secure, true)
	return nil
}

// ClearSession 立即过期访问令牌 cookie
func ClearSession(c *gin.Context) {
	jwtConf := config.Conf.JWT
	c.SetCookie(jwtConf.CookieName, "", -1, "/", "", jwtConf.Secure, true)
}
