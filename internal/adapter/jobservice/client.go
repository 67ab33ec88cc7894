// Package jobservice is the HTTP adapter for the external job service that
// owns students, quizzes and extension jobs.
package jobservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"quiz-extensions/internal/config"
	"quiz-extensions/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const maxBodyBytes = 4 << 20

var ErrUnexpectedStatus = errors.New("jobservice: unexpected status code")

// Client implements domain.JobService over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	cfg        config.JobServiceConfig
	logger     *zap.Logger
}

type updateResponse struct {
	RefreshJobURL string `json:"refresh_job_url"`
	UpdateJobURL  string `json:"update_job_url"`
}

type studentPageResponse struct {
	Items    []domain.Item `json:"items"`
	PrevPage int           `json:"prev_page"`
	NextPage int           `json:"next_page"`
}

// NewClient builds a client that sends the configured API key as a bearer
// token on every request.
func NewClient(ctx context.Context, cfg config.JobServiceConfig, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid job service base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("job service base url %q must be absolute", cfg.BaseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.APIKey != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIKey,
			TokenType:   "Bearer",
		}))
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

var _ domain.JobService = (*Client)(nil)

func (c *Client) coursePath(tmpl, courseID string) string {
	return fmt.Sprintf(tmpl, url.PathEscape(courseID))
}

// resolve turns a path or a job URL returned by the service into an absolute URL.
func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(u).String(), nil
}

func (c *Client) do(ctx context.Context, method, ref string, body interface{}) (int, []byte, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}
	c.logger.Debug("Job service call",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
	)
	return resp.StatusCode, data, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// SearchStudents implements domain.JobService.
func (c *Client) SearchStudents(ctx context.Context, courseID, query string, page int) (*domain.StudentPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	if c.cfg.DefaultPerPage > 0 {
		params.Set("per_page", strconv.Itoa(c.cfg.DefaultPerPage))
	}
	ref := c.coursePath(c.cfg.FilterPath, courseID) + "?" + params.Encode()

	code, data, err := c.do(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(code) {
		return nil, fmt.Errorf("%w: %d from student search", ErrUnexpectedStatus, code)
	}

	var resp studentPageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode student page: %w", err)
	}
	return &domain.StudentPage{
		Items:    resp.Items,
		Page:     page,
		PrevPage: resp.PrevPage,
		NextPage: resp.NextPage,
	}, nil
}

// SubmitUpdate implements domain.JobService.
func (c *Client) SubmitUpdate(ctx context.Context, courseID string, req domain.BatchRequest) (*domain.SubmitResult, error) {
	code, data, err := c.do(ctx, http.MethodPost, c.coursePath(c.cfg.UpdatePath, courseID), req)
	if err != nil {
		return nil, err
	}
	if !isSuccess(code) {
		return nil, fmt.Errorf("%w: %d from update", ErrUnexpectedStatus, code)
	}

	var resp updateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	if resp.RefreshJobURL == "" || resp.UpdateJobURL == "" {
		return nil, fmt.Errorf("update response is missing job urls")
	}
	return &domain.SubmitResult{
		Refresh: domain.JobHandle{Kind: domain.JobKindRefresh, URL: resp.RefreshJobURL},
		Update:  domain.JobHandle{Kind: domain.JobKindUpdate, URL: resp.UpdateJobURL},
	}, nil
}

// SubmitRefresh implements domain.JobService.
func (c *Client) SubmitRefresh(ctx context.Context, courseID string) (*domain.JobHandle, error) {
	code, data, err := c.do(ctx, http.MethodPost, c.coursePath(c.cfg.RefreshPath, courseID), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(code) {
		return nil, fmt.Errorf("%w: %d from refresh", ErrUnexpectedStatus, code)
	}

	var resp updateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if resp.RefreshJobURL == "" {
		return nil, fmt.Errorf("refresh response is missing refresh_job_url")
	}
	return &domain.JobHandle{Kind: domain.JobKindRefresh, URL: resp.RefreshJobURL}, nil
}

// JobStatus implements domain.JobService. Running jobs answer 202 and finished
// jobs 200. A failed job (500) or an unknown job key (404) comes back as an
// in-band failed status when the body carries a status message.
func (c *Client) JobStatus(ctx context.Context, jobURL string) (*domain.JobStatus, error) {
	code, data, err := c.do(ctx, http.MethodGet, jobURL, nil)
	if err != nil {
		return nil, err
	}

	var status domain.JobStatus
	body := bytes.TrimSpace(data)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &status); err != nil {
			if isSuccess(code) {
				return nil, fmt.Errorf("failed to decode job status: %w", err)
			}
			return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, code, jobURL)
		}
	}

	switch {
	case isSuccess(code):
		return &status, nil
	case (code == http.StatusNotFound || code == http.StatusInternalServerError) && (status.Error || status.StatusMsg != ""):
		status.Status = domain.JobStatusFailed
		status.Error = true
		return &status, nil
	default:
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, code, jobURL)
	}
}

// MissingQuizzes implements domain.JobService. The service answers a bare
// JSON boolean.
func (c *Client) MissingQuizzes(ctx context.Context, courseID string) (bool, error) {
	code, data, err := c.do(ctx, http.MethodGet, c.coursePath(c.cfg.AdvisoryPath, courseID), nil)
	if err != nil {
		return false, err
	}
	if !isSuccess(code) {
		return false, fmt.Errorf("%w: %d from missing quizzes", ErrUnexpectedStatus, code)
	}
	missing, err := strconv.ParseBool(strings.Trim(strings.TrimSpace(string(data)), `"`))
	if err != nil {
		return false, fmt.Errorf("failed to decode missing quizzes flag: %w", err)
	}
	return missing, nil
}
