package vote

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupVoteRoutes 注册点赞/点踩路由
func SetupVoteRoutes(router gin.IRouter, db *gorm.DB, auth gin.HandlerFunc) {
	h := NewHandler(NewService(db))

	router.POST("/like", auth, h.Like)
	router.POST("/dislike", auth, h.Dislike)
}
