// Package submitter delivers the final payload to the discovered
// submission target.
package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jverma/quiz-solver/models"
)

type Client struct {
	client *http.Client
}

// New creates a submission client bounded by timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// Submit POSTs the payload as JSON with submit_url stripped and returns the
// target's response. A JSON body is parsed as-is; anything else comes back
// under a "raw" key. The status code is not checked: whatever the target
// answers is the task's result.
func (c *Client) Submit(ctx context.Context, submitURL string, payload models.ResultPayload) (map[string]any, error) {
	body, err := json.Marshal(payload.WithoutSubmitURL())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to POST to %s: %w", submitURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read submit response: %w", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return map[string]any{"raw": string(respBody)}, nil
	}
	return parsed, nil
}
