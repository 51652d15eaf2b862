package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/logger"
)

// Registration actions.
const (
	actionSignup     = "signup"
	actionUnregister = "unregister"
)

// HTTPClient wraps http.Client with a base URL and timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (int, []byte, error) {
	return c.do(ctx, http.MethodGet, path)
}

// Post performs a body-less POST request.
func (c *HTTPClient) Post(ctx context.Context, path string) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, path)
}

// fetchCatalog reads GET /activities preserving its order.
func fetchCatalog(ctx context.Context, client *HTTPClient) (activity.Catalog, error) {
	status, body, err := client.Get(ctx, "/activities")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	if status != StatusOK {
		return nil, fmt.Errorf("fetch activities returned status %d", status)
	}
	var c activity.Catalog
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return c, nil
}

// registrationPath builds the sign-up or unregister URL for e.
func registrationPath(action string, e Enrollment) string {
	return "/activities/" + url.PathEscape(e.Activity) + "/" + action + "?email=" + url.QueryEscape(e.Email)
}

// submitAll posts action for every enrollment using a worker pool.
func submitAll(ctx context.Context, config *Config, client *HTTPClient, action string, enrollments []Enrollment) tally {
	log := logger.Get()
	log.Info(ctx, "submitting requests",
		logger.String("action", action),
		logger.Int("requests", len(enrollments)),
		logger.Int("workers", config.Workers))

	var ok, rejected, failed, submitted atomic.Int64

	work := make(chan Enrollment, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range work {
				if ctx.Err() != nil {
					failed.Add(1)
					continue
				}
				switch submitOne(ctx, client, action, e) {
				case outcomeOK:
					ok.Add(1)
				case outcomeRejected:
					rejected.Add(1)
				default:
					failed.Add(1)
				}
				if n := submitted.Add(1); config.Verbose && n%100 == 0 {
					log.Debug(ctx, "progress",
						logger.String("action", action),
						logger.Int64("submitted", n),
						logger.Int("total", len(enrollments)))
				}
			}
		}()
	}

	for _, e := range enrollments {
		work <- e
	}
	close(work)
	wg.Wait()

	t := tally{ok: int(ok.Load()), rejected: int(rejected.Load()), failed: int(failed.Load())}
	log.Info(ctx, "submission completed",
		logger.String("action", action),
		logger.Int("ok", t.ok),
		logger.Int("rejected", t.rejected),
		logger.Int("failed", t.failed))
	return t
}

// submitOne posts a single registration change and classifies the reply.
func submitOne(ctx context.Context, client *HTTPClient, action string, e Enrollment) outcome {
	status, _, err := client.Post(ctx, registrationPath(action, e))
	switch {
	case err != nil:
		return outcomeFailed
	case status == StatusOK:
		return outcomeOK
	case status == StatusBadRequest:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}
