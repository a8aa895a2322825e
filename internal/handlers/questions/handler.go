package questions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/core/services/grading"
	"gitlab.com/codeprep-2025.net/internal/handlers/response"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

// CodeSubmission is the request body for testing candidate code
type CodeSubmission struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// QuestionHandler handles question API requests
type QuestionHandler struct {
	questions      secondary.QuestionRepository
	gradingService grading.IGradingService
	logger         primary.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questions secondary.QuestionRepository, gradingService grading.IGradingService, logger primary.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions:      questions,
		gradingService: gradingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for QuestionHandler
func (h *QuestionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/questions", h.ListQuestions).Methods("GET")
	router.HandleFunc("/api/questions/{questionId}", h.GetQuestion).Methods("GET")
	router.HandleFunc("/api/questions/{questionId}/test", h.TestCode).Methods("POST")
}

// ListQuestions handles question list requests
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	questions, err := h.questions.ListQuestions(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list questions", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to list questions", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, questions)
}

// GetQuestion handles question retrieval requests
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.questionID(w, r)
	if !ok {
		return
	}

	question, err := h.questions.GetQuestion(r.Context(), questionID)
	if err != nil {
		if errors.Is(err, errs.QuestionNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Question not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get question", "questionId", questionID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get question", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, question)
}

// TestCode grades a candidate submission against the question's test cases
func (h *QuestionHandler) TestCode(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.questionID(w, r)
	if !ok {
		return
	}

	var req CodeSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode submission", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Code == "" {
		response.WriteError(w, response.ErrorMessage{Message: "Code is required", StatusCode: http.StatusBadRequest})
		return
	}
	if req.Language == "" {
		req.Language = "javascript"
	}

	report, err := h.gradingService.GradeSubmission(r.Context(), questionID, req.Code, req.Language)
	if err != nil {
		h.logger.Error("Failed to grade submission", "questionId", questionID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to grade submission", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, report)
}

func (h *QuestionHandler) questionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	idStr := vars["questionId"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid question ID", "id", idStr)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid question ID", StatusCode: http.StatusBadRequest})
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
