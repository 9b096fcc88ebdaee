// Package upstream holds the error kinds and request plumbing shared by the
// third-party API clients (JustTCG and eBay).
package upstream

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
	"time"

	"github.com/donaldgifford/tcg-analytics/internal/metrics"
)

// ErrNotConfigured is returned when a client cannot be built because a
// required credential is missing.
var ErrNotConfigured = errors.New("credential not configured")

// maxErrorBody caps how much of a non-2xx body is kept on a RequestError.
const maxErrorBody = 512

// RequestError is returned for any transport failure or non-2xx response
// from an upstream API.
type RequestError struct {
	Service    string
	Op         string
	StatusCode int // zero for transport failures
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s request failed (status %d): %s", e.Service, e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s request failed: %v", e.Service, e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotConfigured reports whether err signals a missing credential.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// Call describes a single upstream request.
type Call struct {
	Service string
	Op      string
	Method  string
	URL     string
	Header  http.Header
	Body    any        // JSON-encoded when non-nil
	Form    url.Values // form-encoded when non-nil, takes precedence over Body
}

// DoJSON executes call with hc and decodes a 2xx JSON response into dst.
// Exactly one attempt is made. dst may be nil to discard the body.
func DoJSON(ctx context.Context, hc *http.Client, call Call, dst any) error {
	start := time.Now()
	status, err := do(ctx, hc, call, dst)
	metrics.UpstreamRequestDuration.
		WithLabelValues(call.Service, call.Op).
		Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.
		WithLabelValues(call.Service, call.Op, statusLabel(status, err)).
		Inc()
	return err
}

func do(ctx context.Context, hc *http.Client, call Call, dst any) (int, error) {
	var body io.Reader = http.NoBody
	switch {
	case call.Form != nil:
		body = strings.NewReader(call.Form.Encode())
	case call.Body != nil:
		data, err := json.Marshal(call.Body)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s request body: %w", call.Op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, call.URL, body)
	if err != nil {
		return 0, fmt.Errorf("creating %s request: %w", call.Op, err)
	}
	for k, vs := range call.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if call.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, &RequestError{Service: call.Service, Op: call.Op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &RequestError{
			Service: call.Service,
			Op:      call.Op,
			Err:     fmt.Errorf("reading response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RequestError{
			Service:    call.Service,
			Op:         call.Op,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
	}

	if dst == nil {
		return resp.StatusCode, nil
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return resp.StatusCode, &RequestError{
			Service: call.Service,
			Op:      call.Op,
			Err:     fmt.Errorf("parsing response: %w", err),
		}
	}
	return resp.StatusCode, nil
}

func statusLabel(status int, err error) string {
	if status == 0 && err != nil {
		return "error"
	}
	return strconv.Itoa(status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
