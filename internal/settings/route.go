package settings

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/media"
)

func RegisterRoutes(r gin.IRouter, db *gorm.DB, storage *media.Storage, board leaderboard.Service, auth gin.HandlerFunc) {
	h := &SettingsHandler{
		service:  NewSettingsService(db, storage),
		board:    board,
		mediaURL: storage.URLPrefix(),
	}
	r.GET("/settings/", auth, h.Get)
	r.POST("/settings/", auth, h.Update)
}
