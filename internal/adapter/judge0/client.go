package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gitlab.com/codeprep-2025.net/internal/config"
	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

const (
	languagesCacheKey        = "judge0:languages"
	submissionCacheKeyPrefix = "judge0:submission:"
)

// Judge language identifiers. An unmapped language degrades to python rather
// than failing; see DESIGN.md for why this behavior is preserved.
var languageIDs = map[string]int{
	"javascript": 63, // JavaScript (Node.js 12.14.0)
	"python":     71, // Python (3.8.1)
	"java":       62, // Java (OpenJDK 13.0.1)
	"cpp":        54, // C++ (GCC 9.2.0)
}

const defaultLanguageID = 71

var tokenPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

var _ secondary.CodeExecutor = (*Client)(nil)

// Client talks to a remote Judge0-compatible execution service. It owns the
// retry policy, the process-wide minimum inter-request interval, and the TTL
// cache for language-list and submission-status lookups. Execute results are
// never cached.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string

	httpClient *http.Client
	limiter    *RateLimiter
	cache      secondary.VerdictCache
	logger     primary.Logger

	maxRetries     int
	retryBaseDelay time.Duration
	cacheTTL       time.Duration

	cpuTimeLimitSec int
	memoryLimitKb   int

	sleep func(time.Duration)
}

// NewClient creates a judge client from config. The cache is best-effort and
// may be the in-memory or the redis-backed implementation.
func NewClient(cfg *config.Judge0Config, cache secondary.VerdictCache, logger primary.Logger) *Client {
	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		apiHost:         cfg.APIHost,
		httpClient:      &http.Client{Timeout: cfg.RequestTimeout},
		limiter:         NewRateLimiter(cfg.MinRequestInterval),
		cache:           cache,
		logger:          logger,
		maxRetries:      cfg.MaxRetries,
		retryBaseDelay:  cfg.RetryBaseDelay,
		cacheTTL:        cfg.CacheTTL,
		cpuTimeLimitSec: cfg.CPUTimeLimitSec,
		memoryLimitKb:   cfg.MemoryLimitKb,
		sleep:           time.Sleep,
	}
}

// Execute runs one submission on the judge and returns its raw verdict.
func (c *Client) Execute(ctx context.Context, code string, language string, stdin string) (*domain.ExecutionVerdict, error) {
	if code == "" {
		return nil, errs.EmptySourceCode
	}

	req := executeRequest{
		SourceCode:    code,
		LanguageID:    c.languageID(language),
		Stdin:         stdin,
		CPUTimeLimit:  c.cpuTimeLimitSec,
		MemoryLimit:   c.memoryLimitKb,
		EnableNetwork: false,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/execute", req)
	if err != nil {
		return nil, err
	}

	var verdict wireVerdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode judge verdict: %w", err)
	}

	return verdict.toDomain(), nil
}

// SupportedLanguages lists the judge's language descriptors, cached for the
// configured TTL under a constant key.
func (c *Client) SupportedLanguages(ctx context.Context) ([]domain.LanguageInfo, error) {
	if data, ok := c.cache.Get(ctx, languagesCacheKey); ok {
		var langs []domain.LanguageInfo
		if err := json.Unmarshal(data, &langs); err == nil {
			c.logger.Debug("Returning cached language list")
			return langs, nil
		}
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/languages", nil)
	if err != nil {
		return nil, err
	}

	var langs []domain.LanguageInfo
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, fmt.Errorf("failed to decode language list: %w", err)
	}

	c.cache.Set(ctx, languagesCacheKey, body, c.cacheTTL)
	return langs, nil
}

// SubmissionStatus polls the verdict for an asynchronous submission token.
// The token shape is checked before any network call is made.
func (c *Client) SubmissionStatus(ctx context.Context, token string) (*domain.ExecutionVerdict, error) {
	if !tokenPattern.MatchString(token) {
		return nil, fmt.Errorf("%w: %q", errs.InvalidToken, token)
	}

	cacheKey := submissionCacheKeyPrefix + token
	if data, ok := c.cache.Get(ctx, cacheKey); ok {
		var cached wireVerdict
		if err := json.Unmarshal(data, &cached); err == nil {
			c.logger.Debug("Returning cached submission status", "token", token)
			return cached.toDomain(), nil
		}
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/submissions/"+token, nil)
	if err != nil {
		return nil, err
	}

	var verdict wireVerdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode submission status: %w", err)
	}

	c.cache.Set(ctx, cacheKey, body, c.cacheTTL)
	return verdict.toDomain(), nil
}

func (c *Client) languageID(language string) int {
	if id, ok := languageIDs[strings.ToLower(language)]; ok {
		return id
	}
	c.logger.Warn("Unknown language, falling back to python", "language", language)
	return defaultLanguageID
}

// doRequest issues one judge call with the shared retry policy: HTTP 429 and
// client-side timeouts are retried up to maxRetries times with exponential
// backoff (base, 2x, 4x); every other failure surfaces immediately. Each
// attempt waits on the shared rate limiter before dispatch.
func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.limiter.Wait()

		body, retryable, err := c.attempt(method, url, payload)
		if err == nil {
			return body, nil
		}

		if !retryable {
			return nil, err
		}
		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d attempts: %v", errs.RetriesExhausted, attempt+1, err)
		}

		delay := c.retryBaseDelay << attempt
		c.logger.Warn("Judge request rate limited or timed out, retrying",
			"url", url,
			"delay", delay,
			"attempt", attempt+1,
			"maxRetries", c.maxRetries)
		c.sleep(delay)
	}
}

// attempt issues exactly one network call. A dispatched call always runs to
// the client's own request timeout; callers cancel between attempts, never
// mid-flight.
func (c *Client) attempt(method, url string, payload interface{}) (body []byte, retryable bool, err error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, false, fmt.Errorf("failed to marshal judge request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, true, fmt.Errorf("judge request timed out: %w", err)
		}
		return nil, false, fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read judge response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("judge rate limited (429)")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("%w: unexpected status %d: %s", errs.JudgeUnavailable, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return data, false, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
