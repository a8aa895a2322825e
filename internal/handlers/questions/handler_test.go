package questions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeprep-2025.net/internal/adapter/inmem"
	"gitlab.com/codeprep-2025.net/internal/core/services/grading"
	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/handlers/questions"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeGradingService struct {
	report *domain.GradingReport
	err    error

	gotQuestionID int64
	gotCode       string
	gotLanguage   string
}

func (f *fakeGradingService) GradeSubmission(_ context.Context, questionID int64, code, language string, _ ...grading.Option) (*domain.GradingReport, error) {
	f.gotQuestionID = questionID
	f.gotCode = code
	f.gotLanguage = language
	return f.report, f.err
}

func setupRouter(svc grading.IGradingService) *mux.Router {
	r := mux.NewRouter()
	handler := questions.NewQuestionHandler(inmem.NewSeededQuestionRepository(), svc, nopLogger{})
	handler.RegisterRoutes(r)
	return r
}

func TestGetQuestionHttp(t *testing.T) {
	router := setupRouter(&fakeGradingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/questions/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var q domain.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "Two Sum", q.Title)
	assert.NotEmpty(t, q.TestCases)
}

func TestGetQuestionHttpNotFound(t *testing.T) {
	router := setupRouter(&fakeGradingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/questions/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuestionHttpInvalidID(t *testing.T) {
	router := setupRouter(&fakeGradingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/questions/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListQuestionsHttp(t *testing.T) {
	router := setupRouter(&fakeGradingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/questions?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list []domain.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestTestCodeHttp(t *testing.T) {
	svc := &fakeGradingService{
		report: &domain.GradingReport{
			Passed:          true,
			TotalTestCases:  2,
			PassedTestCases: 2,
			PassRate:        1.0,
			Feedback:        "All 2 test cases passed.",
		},
	}
	router := setupRouter(svc)

	body, _ := json.Marshal(map[string]string{
		"code":     "function twoSum() {}",
		"language": "javascript",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/questions/1/test", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	assert.Equal(t, int64(1), svc.gotQuestionID)
	assert.Equal(t, "function twoSum() {}", svc.gotCode)
	assert.Equal(t, "javascript", svc.gotLanguage)

	var report struct {
		Passed          bool    `json:"passed"`
		TotalTestCases  int     `json:"total_test_cases"`
		PassedTestCases int     `json:"passed_test_cases"`
		PassRate        float64 `json:"pass_rate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Passed)
	assert.Equal(t, 2, report.TotalTestCases)
	assert.Equal(t, 1.0, report.PassRate)
}

func TestTestCodeHttpDefaultsLanguage(t *testing.T) {
	svc := &fakeGradingService{report: &domain.GradingReport{}}
	router := setupRouter(svc)

	body, _ := json.Marshal(map[string]string{"code": "print('hi')"})
	req := httptest.NewRequest(http.MethodPost, "/api/questions/1/test", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "javascript", svc.gotLanguage)
}

func TestTestCodeHttpRequiresCode(t *testing.T) {
	router := setupRouter(&fakeGradingService{})

	body, _ := json.Marshal(map[string]string{"language": "python"})
	req := httptest.NewRequest(http.MethodPost, "/api/questions/1/test", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
