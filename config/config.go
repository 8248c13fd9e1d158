// Package config loads config.yaml, then lets environment variables override it.
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("warning: .env not loaded: %v", envErr)
		}

		k = koanf.New(".")
		err = load(configPath)
	})

	return err
}

func load(configPath string) error {
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file: %w", err)
	}

	// 环境变量覆盖配置文件: SERVER_PORT -> server.port
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", 1)
	}), nil); err != nil {
		log.Printf("load env failed: %v", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(conf)
	Conf = conf
	return nil
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("load config: %v", err)
	}
}

// Reload 重新加载配置
func Reload(configPath string) error {
	if k == nil {
		return fmt.Errorf("config not initialized")
	}
	return load(configPath)
}

// Default returns a configuration with every default applied and no file read.
func Default() *AppConfig {
	conf := &AppConfig{}
	applyDefaults(conf)
	return conf
}

func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.FrontendURL == "" {
		c.Server.FrontendURL = "http://localhost:5173"
	}

	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24
	}
	if c.JWT.CookieName == "" {
		c.JWT.CookieName = "access_token"
	}

	if c.Cache.LeaderboardTTL == 0 {
		c.Cache.LeaderboardTTL = 300
	}
	if c.Cache.PopularTagsLimit == 0 {
		c.Cache.PopularTagsLimit = 5
	}
	if c.Cache.BestMembersLimit == 0 {
		c.Cache.BestMembersLimit = 5
	}
	if c.Cache.BestMembersRankBy == "" {
		c.Cache.BestMembersRankBy = "answers"
	}
	if c.Cache.MemorySize == 0 {
		c.Cache.MemorySize = 1024
	}

	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	if c.Media.URL == "" {
		c.Media.URL = "/media"
	}
	if c.Media.MaxAvatarBytes == 0 {
		c.Media.MaxAvatarBytes = 2 << 20
	}

	if c.Seed.Count == 0 {
		c.Seed.Count = 1000000
	}
	if c.Seed.Batch == 0 {
		c.Seed.Batch = 5000
	}
	if c.Seed.CounterBatch == 0 {
		c.Seed.CounterBatch = 1000
	}
}

// LeaderboardTTL 排行榜缓存时间
func (c *AppConfig) LeaderboardTTL() time.Duration {
	return time.Duration(c.Cache.LeaderboardTTL) * time.Second
}

// TokenTTL 访问令牌有效期
func (c *AppConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireTime) * time.Hour
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
