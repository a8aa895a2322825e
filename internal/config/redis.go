package config

type RedisConfig struct {
	DB       int
	Url      string
	Password string
	// Enabled selects the redis-backed verdict cache over the default
	// in-memory one.
	Enabled bool
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:       0,
		Url:      getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		Enabled:  getEnv("REDIS_CACHE_ENABLED", "") == "true",
	}
}
