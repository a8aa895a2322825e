package config

import (
	"strconv"
	"time"
)

// Judge0Config carries the remote judge connection settings and the
// retry/rate-limit policy shared by every outbound call.
type Judge0Config struct {
	BaseURL string
	APIKey  string
	APIHost string

	RequestTimeout     time.Duration
	MaxRetries         int
	RetryBaseDelay     time.Duration
	MinRequestInterval time.Duration
	CacheTTL           time.Duration

	CPUTimeLimitSec int
	MemoryLimitKb   int
}

func NewJudge0Config() *Judge0Config {
	maxRetries, err := strconv.Atoi(getEnv("JUDGE0_MAX_RETRIES", ""))
	if err != nil {
		maxRetries = 3
	}
	return &Judge0Config{
		BaseURL:            getEnv("JUDGE0_API_URL", "https://judge0-ce.p.rapidapi.com"),
		APIKey:             getEnv("JUDGE0_API_KEY", ""),
		APIHost:            getEnv("JUDGE0_API_HOST", "judge0-ce.p.rapidapi.com"),
		RequestTimeout:     60 * time.Second,
		MaxRetries:         maxRetries,
		RetryBaseDelay:     2 * time.Second,
		MinRequestInterval: 1 * time.Second,
		CacheTTL:           60 * time.Second,
		CPUTimeLimitSec:    5,
		MemoryLimitKb:      512000,
	}
}
