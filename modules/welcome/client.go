package welcome

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/guarzo/welcome/common"
)

// Client defines the lower-level HTTP operations against the welcome
// endpoint: the timed GET for the message and the HEAD probe.
type Client interface {
	FetchMessage(ctx context.Context) (string, error)
	Probe(ctx context.Context) error
}

// DefaultMessage is returned when the response carries no usable message
// field.
const DefaultMessage = "Welcome"

// Some metrics counters (optional)
var (
	totalFetches  int64
	fetchFailures int64
	totalProbes   int64
	probeFailures int64
)

type client struct {
	endpoint   string
	timeout    time.Duration
	httpClient common.HttpClient
	log        zerolog.Logger
}

// NewClient creates a Client that talks to the given endpoint with a
// per-request deadline of timeout.
func NewClient(endpoint string, timeout time.Duration, httpClient common.HttpClient, log zerolog.Logger) Client {
	return &client{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

// FetchMessage performs a timed GET against the endpoint and extracts the
// message field from the JSON body. An unparsable body or a missing/empty
// message degrades to DefaultMessage rather than erroring.
func (c *client) FetchMessage(ctx context.Context) (string, error) {
	atomic.AddInt64(&totalFetches, 1)

	data, err := c.doTimed(ctx, http.MethodGet, true)
	if err != nil {
		atomic.AddInt64(&fetchFailures, 1)
		return "", err
	}

	msg := ""
	if res := gjson.GetBytes(data, "message"); res.Type == gjson.String {
		msg = res.Str
	}
	if msg == "" {
		msg = DefaultMessage
	}
	c.log.Debug().Str("endpoint", c.endpoint).Str("message", msg).Msg("fetched welcome message")
	return msg, nil
}

// Probe performs a timed HEAD against the endpoint. Any transport error,
// timeout or non-2xx status is reported as an error.
func (c *client) Probe(ctx context.Context) error {
	atomic.AddInt64(&totalProbes, 1)

	if _, err := c.doTimed(ctx, http.MethodHead, false); err != nil {
		atomic.AddInt64(&probeFailures, 1)
		c.log.Debug().Str("endpoint", c.endpoint).Err(err).Msg("probe failed")
		return err
	}
	return nil
}

// doTimed is the timed fetch primitive: it races the request against a
// deadline of c.timeout. The deferred cancel releases the timer on both
// the success and failure paths; on expiry the in-flight request is
// aborted and a TimeoutError surfaces.
func (c *client) doTimed(ctx context.Context, method string, readBody bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &common.TimeoutError{URL: c.endpoint, After: c.timeout}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// best effort: a body read failure must not mask the status error
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = nil
		}
		return nil, &common.HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if !readBody {
		return nil, nil
	}

	// a partial or failed body read is treated like an unparsable body
	data, _ := io.ReadAll(resp.Body)
	return data, nil
}
