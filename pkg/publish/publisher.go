package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Request is the payload sent to the publishing platform.
type Request struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
	Tags    []string `json:"tags"`
}

// Result is the interpreted platform response.
type Result struct {
	Success bool           `json:"success"`
	PostID  string         `json:"post_id"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Publisher sends finished content to the external platform.
type Publisher interface {
	Publish(ctx context.Context, req Request) (Result, error)
}

// HTTPPublisher posts the payload as JSON to a configured endpoint.
type HTTPPublisher struct {
	endpoint string
	client   *http.Client
}

func NewHTTPPublisher(endpoint string, client *http.Client) *HTTPPublisher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPPublisher{endpoint: endpoint, client: client}
}

type platformResponse struct {
	Success *bool          `json:"success"`
	PostID  string         `json:"post_id"`
	ID      string         `json:"id"`
	Detail  map[string]any `json:"detail"`
}

// Publish sends the request and interprets the reply. A reply without an
// explicit failure indicator counts as success; transport errors, non-2xx
// statuses and explicit failures are returned to the caller, which treats
// them as fatal.
func (p *HTTPPublisher) Publish(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encoding publish payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building publish request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("publish endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading publish response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("publish endpoint returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	var parsed platformResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, fmt.Errorf("publish response unparsable: %w", err)
	}

	result := Result{Success: true, Detail: parsed.Detail}
	if parsed.Success != nil {
		result.Success = *parsed.Success
	}
	result.PostID = parsed.PostID
	if result.PostID == "" {
		result.PostID = parsed.ID
	}
	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// MockPublisher fakes a successful publish for fully offline runs. The
// synthesized post id is clearly marked so it cannot be mistaken for a real
// platform id.
type MockPublisher struct{}

func (MockPublisher) Publish(_ context.Context, req Request) (Result, error) {
	return Result{
		Success: true,
		PostID:  "mock-" + uuid.NewString(),
		Detail: map[string]any{
			"mock":   true,
			"images": len(req.Images),
			"tags":   len(req.Tags),
		},
	}, nil
}
