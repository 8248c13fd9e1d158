package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/config"
	"github.com/Jam721/VkWebHomework/internal/model"
	"github.com/Jam721/VkWebHomework/packages/database"
)

const serviceName = "qa-forum"

var (
	PostgresDB *gorm.DB
	RedisDB    *database.RedisClient
)

// InitDatabase 初始化 PostgreSQL 与（可选的）Redis
func InitDatabase() error {
	if err := initPostgres(); err != nil {
		return err
	}
	initRedis()
	return nil
}

func postgresConfig() *database.PostgresConfig {
	databaseConf := config.Conf.Database

	// 设置默认日志级别，未单独配置时沿用全局 log.level
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = config.Conf.Log.Level
	}
	if logLevel == "" {
		logLevel = "warn"
	}

	return &database.PostgresConfig{
		ServiceName:     serviceName,
		Username:        databaseConf.Username,
		Password:        databaseConf.Password,
		Host:            databaseConf.Host,
		Port:            databaseConf.Port,
		Database:        databaseConf.Database,
		SSLMode:         databaseConf.SSLMode,
		LogLevel:        logLevel,
		MaxIdleConns:    databaseConf.MaxIdleConns,
		MaxOpenConns:    databaseConf.MaxOpenConns,
		ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
	}
}

func initPostgres() error {
	var err error
	PostgresDB, err = database.InitPostgres(postgresConfig())
	if err != nil {
		return err
	}

	// 初始化数据库表
	if err := model.InitTable(PostgresDB); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	return nil
}

// initRedis Redis 不可用时只记录警告，调用方回退到内存缓存
func initRedis() {
	redisConf := config.Conf.Redis
	if !redisConf.Enabled {
		return
	}

	client, err := database.InitRedis(&database.RedisConfig{
		ServiceName: serviceName,
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	})
	if err != nil {
		log.Printf("[%s] redis unavailable, falling back to in-memory cache: %v", serviceName, err)
		return
	}
	RedisDB = client
}

// OpenPgxPool 打开批量导入使用的 pgx 连接池
func OpenPgxPool(ctx context.Context) (*pgxpool.Pool, error) {
	return database.InitPgxPool(ctx, postgresConfig())
}

// Close 关闭所有连接
func Close() {
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if RedisDB != nil {
		_ = RedisDB.Close()
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}
