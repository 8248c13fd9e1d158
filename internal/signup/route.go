package signup

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/media"
)

func RegisterRoutes(r gin.IRouter, db *gorm.DB, storage *media.Storage, board leaderboard.Service) {
	h := &SignupHandler{
		service: NewSignupService(db, storage),
		board:   board,
	}
	r.GET("/signup/", h.Form)
	r.POST("/signup/", h.Signup)
}
