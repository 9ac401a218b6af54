package planclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call correlation ID.
const RequestIDHeader = "X-Request-ID"

// Client talks to the plan backend. Each call is a single attempt; there is
// no retry or backoff.
type Client interface {
	// Generate posts a plan request and returns the decoded schedule.
	// A response carrying an "error" field yields a *BackendError.
	Generate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)

	// Download posts the last result and returns the spreadsheet bytes.
	Download(ctx context.Context, req contract.ExportRequest) ([]byte, error)

	// Modules lists the catalog's module identifiers.
	Modules(ctx context.Context) ([]string, error)
}

// httpClient implements Client over JSON/HTTP.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// New creates a Client for the backend at cfg.Endpoint.
func New(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Generate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	var resp contract.PlanResponse
	err := c.call(ctx, OpGenerate, http.MethodPost, "/generate", req, func(status int, header http.Header, body []byte) error {
		if err := json.Unmarshal(body, &resp); err != nil {
			if status != http.StatusOK {
				return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
			}
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if resp.Error != "" {
			return &BackendError{Op: OpGenerate, Status: status, Message: resp.Error}
		}
		if status != http.StatusOK {
			return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Download(ctx context.Context, req contract.ExportRequest) ([]byte, error) {
	var data []byte
	err := c.call(ctx, OpDownload, http.MethodPost, "/download", req, func(status int, header http.Header, body []byte) error {
		if isJSON(header) {
			var eb contract.ErrorBody
			if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
				return &BackendError{Op: OpDownload, Status: status, Message: eb.Error}
			}
		}
		if status != http.StatusOK {
			return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty file", ErrInvalidResponse)
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *httpClient) Modules(ctx context.Context) ([]string, error) {
	var list contract.ModuleList
	err := c.call(ctx, OpModules, http.MethodGet, "/modules", nil, func(status int, header http.Header, body []byte) error {
		if status != http.StatusOK {
			var eb contract.ErrorBody
			if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
				return &BackendError{Op: OpModules, Status: status, Message: eb.Error}
			}
			return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}
		if err := json.Unmarshal(body, &list); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list.Modules, nil
}

// call performs one exchange and reports it to the observer. decode sees
// every response that arrived, whatever its status.
func (c *httpClient) call(
	ctx context.Context,
	op Operation,
	method, path string,
	payload any,
	decode func(status int, header http.Header, body []byte) error,
) error {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout(op))
	defer cancel()

	status, err := c.doRequest(ctx, method, path, requestID, payload, decode)

	event := CallEvent{
		Op:        op,
		RequestID: requestID,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if err != nil {
		var be *BackendError
		switch {
		case errors.As(err, &be):
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = ErrTimeout
		case isConnectionError(err):
			err = fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *httpClient) doRequest(
	ctx context.Context,
	method, path, requestID string,
	payload any,
	decode func(status int, header http.Header, body []byte) error,
) (int, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.cfg.Endpoint + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(RequestIDHeader, requestID)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	return httpResp.StatusCode, decode(httpResp.StatusCode, httpResp.Header, body)
}

func isJSON(h http.Header) bool {
	return strings.HasPrefix(h.Get("Content-Type"), "application/json")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var be *BackendError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &be):
		return "BACKEND_ERROR"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrBackendUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrUnexpectedStatus):
		return "BAD_STATUS"
	default:
		return "UNKNOWN"
	}
}
