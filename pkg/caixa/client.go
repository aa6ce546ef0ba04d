// Package caixa talks to the official Caixa lottery results API and owns the
// translation between its wire schema and the internal draw record.
package caixa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lotodata/megasena-backend/internal/apperrors"
)

const (
	// DefaultBaseURL is the Mega-Sena endpoint of the portal de loterias API.
	DefaultBaseURL = "https://servicebus2.caixa.gov.br/portaldeloterias/api/megasena"

	// DefaultUserAgent mirrors a desktop browser; the portal rejects requests
	// without a browser-looking agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultTimeout = 10 * time.Second
)

// Client is an HTTP client for the Caixa results API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a Client. Empty arguments fall back to the defaults.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// FetchDraw retrieves one draw from the Caixa API. A nil drawNumber requests
// the most recent draw.
func (c *Client) FetchDraw(ctx context.Context, drawNumber *int) (*DrawResponse, error) {
	url := c.baseURL + "/"
	if drawNumber != nil {
		url += strconv.Itoa(*drawNumber)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperrors.UpstreamError{Cause: apperrors.CauseNetwork, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperrors.UpstreamError{Cause: apperrors.CauseNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.UpstreamError{
			Cause: apperrors.CauseNetwork,
			Err:   fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url),
		}
	}

	var raw DrawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &apperrors.UpstreamError{Cause: apperrors.CauseMalformed, Err: err}
	}
	if raw.Numero <= 0 {
		return nil, &apperrors.UpstreamError{
			Cause: apperrors.CauseMalformed,
			Err:   fmt.Errorf("response carries no draw number"),
		}
	}

	return &raw, nil
}
