package config

import "os"

type AppConfig struct {
	DebugMode      bool
	Judge0Config   *Judge0Config
	PostgresConfig *PostgresConfig
	RedisConfig    *RedisConfig
	ServerConfig   *ServerConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		Judge0Config:   NewJudge0Config(),
		PostgresConfig: NewPostgresConfig(),
		RedisConfig:    NewRedisConfig(),
		ServerConfig:   NewServerConfig(),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
