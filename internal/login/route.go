package login

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/leaderboard"
)

func RegisterRoutes(r gin.IRouter, db *gorm.DB, board leaderboard.Service) {
	h := &LoginHandler{
		service: NewLoginService(db),
		board:   board,
	}
	r.GET("/login/", h.Form)
	r.POST("/login/", h.Login)
}
