package route

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/config"
	_ "github.com/Jam721/VkWebHomework/docs"
	"github.com/Jam721/VkWebHomework/internal/answer"
	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/login"
	"github.com/Jam721/VkWebHomework/internal/logout"
	"github.com/Jam721/VkWebHomework/internal/media"
	"github.com/Jam721/VkWebHomework/internal/middleware"
	"github.com/Jam721/VkWebHomework/internal/question"
	"github.com/Jam721/VkWebHomework/internal/settings"
	"github.com/Jam721/VkWebHomework/internal/signup"
	"github.com/Jam721/VkWebHomework/internal/vote"
)

// Deps 路由所需的全部依赖
// Revoked 存放已注销令牌，不可使用按容量淘汰的缓存
type Deps struct {
	DB      *gorm.DB
	Cache   cache.Cache
	Revoked cache.Cache
	Storage *media.Storage
	Board   leaderboard.Service
	Conf    *config.AppConfig
}

func initRoute(r *gin.Engine, deps Deps) {
	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuth(deps.Revoked)
	optionalAuth := middleware.OptionalJWTAuth(deps.Revoked)

	r.Static(deps.Storage.URLPrefix(), deps.Storage.Root())

	question.SetupQuestionRoutes(r, deps.DB, deps.Board, deps.Storage.URLPrefix(), optionalAuth, auth)
	answer.SetupAnswerRoutes(r, deps.DB, auth)
	vote.SetupVoteRoutes(r, deps.DB, auth)

	signup.RegisterRoutes(r, deps.DB, deps.Storage, deps.Board)
	login.RegisterRoutes(r, deps.DB, deps.Board)
	logout.RegisterRoutes(r, deps.Revoked, optionalAuth)
	settings.RegisterRoutes(r, deps.DB, deps.Storage, deps.Board, auth)
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 设置跨域请求，cookie 会话需要携带凭据
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.Conf.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRFToken"},
		AllowCredentials: true,
	}))

	initRoute(r, deps)

	return r
}
