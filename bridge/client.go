package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is where the bridge plugin listens unless configured
// otherwise.
const DefaultBaseURL = "http://127.0.0.1:8090"

const defaultCallTimeout = 30 * time.Second

// ClientConfig configures the bridge client.
type ClientConfig struct {
	// BaseURL is the bridge address. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the underlying HTTP client, primarily for
	// tests. Per-call timeouts are applied through the request context,
	// so the override should not set its own Timeout.
	HTTPClient *http.Client
}

// Client performs exactly one HTTP request per tool invocation against the
// bridge and converts every outcome, success or failure, into a normalized
// result. It never retries and never lets a transport error escape as a
// raw error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a bridge client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("bridge: invalid base URL %q", base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the configured bridge address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call posts body to the bridge path and returns the normalized content
// sequence. Transport failures, timeouts, and non-2xx responses all come
// back as a marked-as-error result rather than an error value.
func (c *Client) Call(ctx context.Context, path string, body map[string]any, timeout time.Duration) Result {
	requestID := uuid.NewString()
	start := time.Now()

	raw, err := c.post(ctx, path, body, requestID, timeout)
	if err != nil {
		emitCallObservation(CallObservation{
			Endpoint:   path,
			RequestID:  requestID,
			DurationMS: elapsedMS(start),
			Success:    false,
			ErrorCode:  ErrorCode(err, CodeConnectivity),
		})
		return NormalizeFailure(failureMessage(err), failureBody(err))
	}

	emitCallObservation(CallObservation{
		Endpoint:   path,
		RequestID:  requestID,
		DurationMS: elapsedMS(start),
		Success:    true,
	})
	return NormalizeRaw(raw)
}

// post performs the single HTTP exchange. Non-2xx responses return an
// upstream-failure error carrying the response body in its details so the
// caller can re-normalize it.
func (c *Client) post(ctx context.Context, path string, body map[string]any, requestID string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload := make(map[string]any, len(body)+1)
	for key, value := range body {
		payload[key] = value
	}
	payload["request_id"] = requestID

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, newBridgeError(CodeCallFailed, fmt.Sprintf("bridge: encode request for %s", path), err)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, newBridgeError(CodeCallFailed, fmt.Sprintf("bridge: build request for %s", path), err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var transportErr *BridgeError
		if errors.Is(err, context.DeadlineExceeded) {
			transportErr = newBridgeError(CodeTimeout,
				fmt.Sprintf("Editor bridge call to %s timed out after %s.", endpoint, timeout), err)
		} else {
			transportErr = newBridgeError(CodeConnectivity,
				fmt.Sprintf("Could not reach the editor bridge at %s.", endpoint), err)
		}
		transportErr.Retryable = true
		return nil, transportErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newBridgeError(CodeConnectivity,
			fmt.Sprintf("Could not read the editor bridge response from %s.", endpoint), err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		upstreamErr := newBridgeError(CodeUpstreamFailure,
			fmt.Sprintf("Editor bridge returned HTTP %d for %s.", resp.StatusCode, endpoint), nil)
		if len(raw) > 0 {
			upstreamErr.Details = map[string]any{"body": raw}
		}
		return nil, upstreamErr
	}
	return raw, nil
}

// failureMessage strips the machine-readable code prefix; the normalized
// block should read like prose, not like a log line.
func failureMessage(err error) string {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) && bridgeErr != nil && strings.TrimSpace(bridgeErr.Message) != "" {
		return bridgeErr.Message
	}
	return err.Error()
}

// failureBody extracts a structured failure body attached by post, if any.
func failureBody(err error) []byte {
	var bridgeErr *BridgeError
	if !errors.As(err, &bridgeErr) || bridgeErr == nil || bridgeErr.Details == nil {
		return nil
	}
	if body, ok := bridgeErr.Details["body"].([]byte); ok {
		return body
	}
	return nil
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
