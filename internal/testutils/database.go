package testutils

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jam721/VkWebHomework/internal/cache"
	"github.com/Jam721/VkWebHomework/internal/model"
	dbPkg "github.com/Jam721/VkWebHomework/packages/database"
)

// SetupTestDB opens a fresh in-memory SQLite database with every table migrated.
// The pool is pinned to one connection so every query sees the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// SetupTestDBWithForeignKeys is SetupTestDB with foreign key enforcement on,
// for tests that rely on cascading deletes.
func SetupTestDBWithForeignKeys(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, ":memory:?_pragma=foreign_keys(1)")
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Suppress logs in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupTestCache returns an empty in-process cache.
func SetupTestCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	return cache.NewMemoryCache(128)
}

// SetupTestRedis creates a test Redis connection
// Returns nil if Redis is not available (tests can skip Redis-dependent features)
func SetupTestRedis(t *testing.T) *dbPkg.RedisClient {
	t.Helper()

	redisHost := getEnvOrDefault("REDIS_HOST", "localhost")
	redisPort, err := strconv.Atoi(getEnvOrDefault("REDIS_PORT", "6380"))
	if err != nil || redisPort == 0 {
		redisPort = 6380
	}

	redisClient, err := dbPkg.InitRedis(&dbPkg.RedisConfig{
		ServiceName: "qa-forum-test",
		Host:        redisHost,
		Port:        redisPort,
	})
	if err != nil || redisClient == nil {
		return nil
	}

	t.Cleanup(func() {
		redisClient.FlushDB(context.Background())
		redisClient.Close()
	})
	return redisClient
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
