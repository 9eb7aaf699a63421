package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexabank/crm-insights/pkg/circuitbreaker"
	"github.com/nexabank/crm-insights/pkg/metrics"
	"github.com/nexabank/crm-insights/pkg/retry"
)

// HTTPClient wraps http.Client with retry and circuit breaker
type HTTPClient struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	serviceName    string
}

// NewHTTPClient creates a new HTTP client with retry and circuit breaker
func NewHTTPClient(serviceName string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
		serviceName:    serviceName,
	}
}

// PostJSON performs a POST request with retry and circuit breaker, returning
// the response body. Non-2xx statuses are returned as errors; 5xx responses
// are retried, 4xx are not.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, headers map[string]string, body interface{}) ([]byte, error) {
	start := time.Now()
	var respBody []byte
	var statusErr *StatusError

	err := c.circuitBreaker.Execute(ctx, func() error {
		return retry.Do(ctx, retry.DefaultConfig(), func() error {
			jsonData, marshalErr := json.Marshal(body)
			if marshalErr != nil {
				return marshalErr
			}

			req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
			if reqErr != nil {
				return reqErr
			}
			req.Header.Set("Content-Type", "application/json")
			for k, v := range headers {
				req.Header.Set(k, v)
			}

			resp, doErr := c.client.Do(req)
			if doErr != nil {
				return doErr
			}
			defer resp.Body.Close()

			data, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				return readErr
			}

			if resp.StatusCode >= 500 {
				return fmt.Errorf("%s server error: %d", c.serviceName, resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				// Client errors are terminal: no retry, and the breaker does
				// not count them as upstream failures.
				statusErr = &StatusError{Status: resp.StatusCode, Body: string(data)}
				return nil
			}

			statusErr = nil
			respBody = data
			return nil
		})
	})

	latency := time.Since(start)
	metrics.RecordServiceCall(c.serviceName, err == nil && statusErr == nil, latency)
	metrics.UpdateCircuitBreaker(c.serviceName, c.circuitBreaker.GetState().String(), int64(c.circuitBreaker.Failures()))

	if err != nil {
		return nil, err
	}
	if statusErr != nil {
		return nil, statusErr
	}
	return respBody, nil
}

// StatusError reports a non-retryable upstream HTTP status
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}
