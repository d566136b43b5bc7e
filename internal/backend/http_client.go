package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/repairshop-service/internal/config"
	"github.com/spec-kit/repairshop-service/internal/domain"
)

// HTTPClient talks JSON over HTTP to the hosted backend.
type HTTPClient struct {
	baseURL    string
	healthPath string
	http       *http.Client
	logger     *zap.Logger
}

// NewHTTPClient builds a client from configuration.
func NewHTTPClient(cfg config.BackendConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		healthPath: cfg.HealthPath,
		http:       &http.Client{Timeout: cfg.RequestTimeout()},
		logger:     logger,
	}
}

// CreateJob registers a new repair order.
func (c *HTTPClient) CreateJob(ctx context.Context, input JobCreateInput) (*domain.Job, error) {
	var job domain.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies a partial update to a job.
func (c *HTTPClient) UpdateJob(ctx context.Context, input JobUpdateInput) (*domain.Job, error) {
	var job domain.Job
	path := "/jobs/" + url.PathEscape(input.JobID)
	if err := c.do(ctx, http.MethodPatch, path, input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job.
func (c *HTTPClient) DeleteJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(jobID), nil, nil)
}

// AddNote attaches a note to a job.
func (c *HTTPClient) AddNote(ctx context.Context, input NoteInput) (*domain.JobNote, error) {
	var note domain.JobNote
	path := "/jobs/" + url.PathEscape(input.JobID) + "/notes"
	if err := c.do(ctx, http.MethodPost, path, input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// ListJobs fetches the jobs visible to the service account.
func (c *HTTPClient) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListCustomers fetches the customer directory.
func (c *HTTPClient) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// ListNotifications fetches notifications for the user.
func (c *HTTPClient) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	path := "/notifications?user_id=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Ping probes the backend health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.healthPath, nil, nil)
}

// do executes one request, decoding the response body into out when
// non-nil. Transport failures and gateway-ish statuses collapse into
// ErrUnavailable so callers know the mutation is queueable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		// DNS failures, refused connections, client timeouts: the
		// network is down as far as the app is concerned.
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer res.Body.Close()

	if unavailableStatus(res.StatusCode) {
		return fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, path, res.StatusCode)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s %s returned %d", method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func unavailableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
