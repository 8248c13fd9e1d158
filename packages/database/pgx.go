package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPgxPool 初始化 pgx 连接池，批量导入等绕过 ORM 的场景使用
func InitPgxPool(ctx context.Context, config *PostgresConfig) (*pgxpool.Pool, error) {
	if config == nil {
		return nil, fmt.Errorf("postgres config is nil")
	}

	cfg, err := pgxpool.ParseConfig(BuildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if config.MaxOpenConns > 0 {
		cfg.MaxConns = int32(config.MaxOpenConns)
	}
	// 批量语句重复执行，缓存预编译语句
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	cfg.ConnConfig.StatementCacheCapacity = 256

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pgx pool: %w", err)
	}

	log.Printf("[%s] pgx pool connected", serviceName(config.ServiceName))
	return pool, nil
}
