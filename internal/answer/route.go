package answer

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAnswerRoutes 注册回答相关路由
func SetupAnswerRoutes(router gin.IRouter, db *gorm.DB, auth gin.HandlerFunc) {
	h := NewHandler(NewService(db))

	router.POST("/answer/:id/", auth, h.Create)
	router.POST("/mark-correct", auth, h.MarkCorrect)
}
