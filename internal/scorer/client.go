// Package scorer calls the external pricing model over HTTP.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/tidwall/gjson"
)

var _ model.Scorer = (*Client)(nil)

const (
	predictPath = "/predict"
	priceField  = "premium_price"
	// maxBodySize bounds how much of the scorer response is read.
	maxBodySize = 1 << 20
)

// Client prices clinical inputs with a remote scoring service.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. Each call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Score posts inputs to the scoring service and returns premium_price.
// Any transport, status or payload failure is reported as model.ErrUpstream.
func (c *Client) Score(ctx context.Context, inputs model.ClinicalInputs) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode scorer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build scorer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response: %v", model.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d", model.ErrUpstream, resp.StatusCode)
	}

	if !gjson.ValidBytes(payload) {
		return 0, fmt.Errorf("%w: malformed response", model.ErrUpstream)
	}

	price := gjson.GetBytes(payload, priceField)
	if price.Type != gjson.Number {
		return 0, fmt.Errorf("%w: response has no numeric %s", model.ErrUpstream, priceField)
	}

	return price.Float(), nil
}
