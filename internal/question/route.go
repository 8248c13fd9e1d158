package question

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/vote"
)

// SetupQuestionRoutes 注册问题列表、详情与提问路由
func SetupQuestionRoutes(router gin.IRouter, db *gorm.DB, board leaderboard.Service, mediaURL string, optionalAuth, auth gin.HandlerFunc) {
	service := NewService(db, vote.NewService(db), mediaURL)
	h := NewHandler(service, board)

	router.GET("/", optionalAuth, h.Index)
	router.GET("/hot/", optionalAuth, h.Hot)
	router.GET("/tag/:name/", optionalAuth, h.Tag)
	router.GET("/question/:id/", optionalAuth, h.Detail)
	router.GET("/ask/", auth, h.AskForm)
	router.POST("/ask/", auth, h.Ask)
}
