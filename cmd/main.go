package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codeprep-2025.net/internal/adapter/cache"
	"gitlab.com/codeprep-2025.net/internal/adapter/inmem"
	"gitlab.com/codeprep-2025.net/internal/adapter/judge0"
	"gitlab.com/codeprep-2025.net/internal/adapter/postgres/questionrepository"
	"gitlab.com/codeprep-2025.net/internal/adapter/postgres/reportrepository"
	"gitlab.com/codeprep-2025.net/internal/adapter/redis/verdictcache"
	"gitlab.com/codeprep-2025.net/internal/config"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/core/services/grading"
	logger2 "gitlab.com/codeprep-2025.net/internal/global/logger"
	http2 "gitlab.com/codeprep-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting grading service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	// SECONDARY PORTS
	var verdictCache secondary.VerdictCache = cache.NewMemoryCache()
	if sysCfg.RedisConfig.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Url,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		defer redisClient.Close()
		verdictCache = verdictcache.New(redisClient, logger)
	}

	executor := judge0.NewClient(sysCfg.Judge0Config, verdictCache, logger)

	var questionRepo secondary.QuestionRepository
	var reportRepo secondary.ReportRepository
	if sysCfg.DebugMode {
		// Debug mode runs without postgres against seeded sample questions.
		questionRepo = inmem.NewSeededQuestionRepository()
	} else {
		db, err := setupDatabase(sysCfg.PostgresConfig)
		if err != nil {
			panic(err)
		}
		defer db.Close()
		questionRepo = questionrepository.NewQuestionRepository(db, logger)
		reportRepo = reportrepository.NewReportRepository(db, logger)
	}

	// services
	gradingSvc := grading.NewService(questionRepo, executor, reportRepo, logger)
	serviceProvider := http2.NewServiceProvider(gradingSvc, questionRepo, executor)

	// server
	httpServer := http2.NewServer(sysCfg.ServerConfig.Port, sysCfg.ServerConfig.ServiceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
