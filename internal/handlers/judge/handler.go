package judge

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/handlers/response"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

// JudgeHandler proxies the remote judge's secondary operations to the UI
type JudgeHandler struct {
	executor secondary.CodeExecutor
	logger   primary.Logger
}

// NewJudgeHandler creates a new judge handler
func NewJudgeHandler(executor secondary.CodeExecutor, logger primary.Logger) *JudgeHandler {
	return &JudgeHandler{
		executor: executor,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes for JudgeHandler
func (h *JudgeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/judge/languages", h.GetLanguages).Methods("GET")
	router.HandleFunc("/api/judge/submissions/{token}", h.GetSubmissionStatus).Methods("GET")
}

// GetLanguages handles supported-language list requests
func (h *JudgeHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.executor.SupportedLanguages(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch languages", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to fetch languages", StatusCode: http.StatusBadGateway})
		return
	}

	response.WriteSuccess(w, languages)
}

// GetSubmissionStatus handles submission status polling requests
func (h *JudgeHandler) GetSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]

	verdict, err := h.executor.SubmissionStatus(r.Context(), token)
	if err != nil {
		if errors.Is(err, errs.InvalidToken) {
			response.WriteError(w, response.ErrorMessage{Message: "Invalid submission token", StatusCode: http.StatusBadRequest})
			return
		}
		h.logger.Error("Failed to fetch submission status", "token", token, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to fetch submission status", StatusCode: http.StatusBadGateway})
		return
	}

	response.WriteSuccess(w, map[string]interface{}{
		"status": map[string]interface{}{
			"id":          int(verdict.StatusID),
			"description": verdict.StatusDescription,
		},
		"stdout":         verdict.Stdout,
		"stderr":         verdict.Stderr,
		"compile_output": verdict.CompileOutput,
		"time_ms":        verdict.TimeMs,
		"memory_kb":      verdict.MemoryKb,
	})
}
