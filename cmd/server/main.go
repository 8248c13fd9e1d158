package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/database"
	grpcserver "github.com/Jam721/VkWebHomework/internal/grpc"
	"github.com/Jam721/VkWebHomework/internal/leaderboard"
	"github.com/Jam721/VkWebHomework/internal/media"
	"github.com/Jam721/VkWebHomework/internal/route"
)

// @title Q&A Forum API
// @version 1.0
// @description 问答社区接口
// @BasePath /
func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")
	conf := config.Conf
	gin.SetMode(conf.Server.Mode)

	// 2. 初始化数据库
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close()

	// 3. 缓存：优先 Redis，否则进程内 LRU；已注销令牌单独存放，只按过期清除
	var c, revoked cache.Cache
	if database.RedisDB != nil {
		c = cache.NewRedisCache(database.RedisDB.Client, "qa-forum:")
		revoked = c
	} else {
		c = cache.NewMemoryCache(conf.Cache.MemorySize)
		revoked = cache.NewRevocationStore(conf.TokenTTL())
	}

	opts, err := leaderboard.OptionsFromConfig(conf)
	if err != nil {
		log.Printf("[server] warning: %v", err)
	}
	board := leaderboard.NewService(leaderboard.NewRepository(database.GetDB()), c, opts)

	// 4. 设置路由
	r := route.SetupRouter(route.Deps{
		DB:      database.GetDB(),
		Cache:   c,
		Revoked: revoked,
		Storage: media.FromConfig(conf),
		Board:   board,
		Conf:    conf,
	})

	srv := &http.Server{
		Addr:         conf.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(conf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.Server.WriteTimeout) * time.Second,
	}

	// 5. 健康检查
	var health *grpcserver.Server
	if conf.GRPC.Port > 0 {
		health, err = grpcserver.NewServer(conf.GRPC.Port)
		if err != nil {
			log.Fatalf("start grpc: %v", err)
		}
		go func() {
			log.Printf("[server] grpc health listening on %s", health.GetAddr())
			if err := health.Start(); err != nil {
				log.Printf("[server] grpc stopped: %v", err)
			}
		}()
		health.SetServing(true)
	}

	// 6. 启动服务
	go func() {
		log.Printf("[server] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[server] shutting down")

	if health != nil {
		health.SetServing(false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[server] forced shutdown: %v", err)
	}
	if health != nil {
		health.Stop()
	}
}
