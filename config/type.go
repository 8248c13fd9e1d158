package config

// AppConfig 应用配置结构
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	GRPC     GRPCConfig     `koanf:"grpc"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
	Cache    CacheConfig    `koanf:"cache"`
	Media    MediaConfig    `koanf:"media"`
	Seed     SeedConfig     `koanf:"seed"`
}

type ServerConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Mode         string `koanf:"mode"`          // debug, release, test
	ReadTimeout  int    `koanf:"read_timeout"`  // 秒
	WriteTimeout int    `koanf:"write_timeout"` // 秒
	FrontendURL  string `koanf:"frontend_url"`
}

type GRPCConfig struct {
	Port int `koanf:"port"` // 0 disables the health listener
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
	CookieName string `koanf:"cookie_name"`
	Secure     bool   `koanf:"secure"`
}

type CacheConfig struct {
	LeaderboardTTL    int    `koanf:"leaderboard_ttl"` // 秒
	PopularTagsLimit  int    `koanf:"popular_tags_limit"`
	BestMembersLimit  int    `koanf:"best_members_limit"`
	BestMembersRankBy string `koanf:"best_members_rank_by"` // answers, questions, questions_answers
	MemorySize        int    `koanf:"memory_size"`
}

type MediaConfig struct {
	Root           string `koanf:"root"`
	URL            string `koanf:"url"`
	MaxAvatarBytes int64  `koanf:"max_avatar_bytes"`
}

type SeedConfig struct {
	Count        int `koanf:"count"`
	Batch        int `koanf:"batch"`
	CounterBatch int `koanf:"counter_batch"`
}
