// Package estimator is the HTTP client for the remote commute emissions
// estimation service.
package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/commutree/internal/commute"
)

// singleJourneyPath is the estimation endpoint, relative to the base URL.
const singleJourneyPath = "/single-journey"

// maxErrorBodyBytes bounds how much of an error response is read when
// looking for a service-supplied message.
const maxErrorBodyBytes = 4096

// ErrEstimateFailed is the generic estimation failure shown to the user
// when the service gives nothing more specific.
const ErrEstimateFailed = constError("Failed to calculate carbon emissions")

type constError string

func (e constError) Error() string { return string(e) }

// Client calls the estimation service. It implements commute.Estimator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ commute.Estimator = (*Client)(nil)

// New creates a Client for the given service base URL. The timeout bounds
// each estimation call end to end; the service publishes no SLA so the
// client enforces its own deadline.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// singleJourneyRequest is the wire request for one estimation call.
type singleJourneyRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
}

// singleJourneyResponse is the wire response. Only the emissions field is
// part of the contract; anything else the service sends is ignored.
type singleJourneyResponse struct {
	EmissionsKgCO2e *float64 `json:"emissions_kgCO2e"`
}

// errorResponse is the optional error shape some failures carry.
type errorResponse struct {
	Error string `json:"error"`
}

// EstimateSingleJourney requests a one-way emissions estimate for the given
// commute.
//
// The input is normalized before transmission: postcodes lose their spaces
// and are uppercased, the travel method is lowercased. Any transport
// failure, non-2xx status, or malformed payload yields an error whose
// message is safe to show the user; a service-supplied error message is
// preferred, falling back to ErrEstimateFailed. No retry and no caching.
func (c *Client) EstimateSingleJourney(ctx context.Context, input commute.CommuteInput) (commute.EmissionsEstimate, error) {
	normalized := input.Normalized()

	body, err := json.Marshal(singleJourneyRequest{
		Origin:      normalized.HomePostcode,
		Destination: normalized.WorkPostcode,
		Mode:        string(normalized.TravelMethod),
	})
	if err != nil {
		return commute.EmissionsEstimate{}, fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + singleJourneyPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return commute.EmissionsEstimate{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("estimation request failed")
		return commute.EmissionsEstimate{}, ErrEstimateFailed
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("mode", string(normalized.TravelMethod)).
		Msg("single-journey response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return commute.EmissionsEstimate{}, c.errorFromResponse(resp)
	}

	var payload singleJourneyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn().Err(err).Msg("unparseable estimation payload")
		return commute.EmissionsEstimate{}, ErrEstimateFailed
	}
	if payload.EmissionsKgCO2e == nil {
		c.logger.Warn().Msg("estimation payload missing emissions_kgCO2e")
		return commute.EmissionsEstimate{}, ErrEstimateFailed
	}

	return commute.EmissionsEstimate{OneWayKgCO2e: *payload.EmissionsKgCO2e}, nil
}

// errorFromResponse extracts a service-supplied error message from a
// non-2xx response, falling back to the generic failure.
func (c *Client) errorFromResponse(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return constError(apiErr.Error)
		}
	}

	c.logger.Warn().Int("status", resp.StatusCode).Msg("estimation service returned non-success status")
	return ErrEstimateFailed
}
