package config

import "strconv"

type ServerConfig struct {
	Port        int
	ServiceName string
}

func NewServerConfig() *ServerConfig {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", ""))
	if err != nil {
		port = 8000
	}
	return &ServerConfig{
		Port:        port,
		ServiceName: "gradingService",
	}
}
