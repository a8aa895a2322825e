package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/core/services/grading"
	"gitlab.com/codeprep-2025.net/internal/handlers/judge"
	"gitlab.com/codeprep-2025.net/internal/handlers/questions"
	"gitlab.com/codeprep-2025.net/internal/handlers/response"
)

type ServiceProvider struct {
	gradingService grading.IGradingService
	questions      secondary.QuestionRepository
	executor       secondary.CodeExecutor
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	questionRepo secondary.QuestionRepository,
	executor secondary.CodeExecutor,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService: gradingService,
		questions:      questionRepo,
		executor:       executor,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	questions.
		NewQuestionHandler(s.ServiceProvider.questions, s.ServiceProvider.gradingService, s.logger).
		RegisterRoutes(r)
	judge.
		NewJudgeHandler(s.ServiceProvider.executor, s.logger).
		RegisterRoutes(r)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.WriteSuccess(w, map[string]string{"status": "healthy"})
	}).Methods("GET")
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.router,
		// Grading requests hold the connection open while test cases run
		// through the judge's rate limiter, so write timeouts stay generous.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
