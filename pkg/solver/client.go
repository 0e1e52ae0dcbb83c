package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lysa05/schedule/pkg/models"
)

// Submitter is the black-box optimizer. The domain model only depends on
// this interface, so everything around it can be tested without a live
// backend.
type Submitter interface {
	Submit(ctx context.Context, req models.SolveRequest) (*models.SolveResponse, error)
}

// TransportError is a non-success HTTP status from the solver. Detail
// carries the server's own message verbatim.
type TransportError struct {
	StatusCode int
	Detail     string
}

func (e *TransportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("solver returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("solver returned status %d", e.StatusCode)
}

// Client submits solve requests over HTTP. Solves can run for several
// minutes, so the timeout is generous. There is no retry and no
// cancellation once a request has been written.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Submitter = (*Client)(nil)

// NewClient creates a client for the solver at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Minute},
	}
}

// Submit posts the request to /solve and decodes the response. A well-formed
// response with a non-optimal status is returned as-is, not as an error; the
// caller decides how to present "no solution".
func (c *Client) Submit(ctx context.Context, req models.SolveRequest) (*models.SolveResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding solve request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling solver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	var out models.SolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding solve response: %w", err)
	}

	// Deficit is defined as max(0, needed-available); clamp whatever the
	// backend sent so it can never go negative downstream.
	for i, u := range out.Understaffed {
		if d := u.Needed - u.Available; d > 0 {
			out.Understaffed[i].Deficit = d
		} else {
			out.Understaffed[i].Deficit = 0
		}
	}
	return &out, nil
}

// readDetail extracts the server's error message. FastAPI-style backends put
// it under "detail"; anything else is returned raw.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(raw))
}
