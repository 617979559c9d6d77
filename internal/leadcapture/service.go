// Package leadcapture submits newsletter signups to an external endpoint
// and tracks the submission status for display.
package leadcapture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type constError string

func (e constError) Error() string { return string(e) }

// Submission errors.
var (
	// ErrInvalidEmail indicates a missing or implausible email address.
	ErrInvalidEmail = constError("please enter a valid email address")

	// ErrSubmitFailed is the generic submission failure message.
	ErrSubmitFailed = constError("Something went wrong, please try again")
)

// Status is the tri-state outcome of the most recent submission.
type Status int

const (
	// StatusIdle means no submission has been attempted yet.
	StatusIdle Status = iota

	// StatusSuccess means the last submission was accepted.
	StatusSuccess

	// StatusError means the last submission failed; Message carries why.
	StatusError
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Service submits email addresses and remembers the last outcome. It is
// peripheral to the calculator: its status never touches visualizer state.
type Service struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger

	status  Status
	message string
}

// New creates a Service posting to the given endpoint URL.
func New(url string, timeout time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// subscribeRequest is the wire request body.
type subscribeRequest struct {
	Email string `json:"email"`
}

// Submit sends the email to the lead-capture endpoint and records the
// outcome. There is no retry; the caller may resubmit freely.
func (s *Service) Submit(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		s.record(StatusError, ErrInvalidEmail.Error())
		return ErrInvalidEmail
	}

	body, err := json.Marshal(subscribeRequest{Email: email})
	if err != nil {
		s.record(StatusError, ErrSubmitFailed.Error())
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.record(StatusError, ErrSubmitFailed.Error())
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("lead capture request failed")
		s.record(StatusError, ErrSubmitFailed.Error())
		return ErrSubmitFailed
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("lead capture endpoint returned non-success status")
		s.record(StatusError, ErrSubmitFailed.Error())
		return ErrSubmitFailed
	}

	s.record(StatusSuccess, "")
	return nil
}

// Status returns the tri-state outcome of the last submission.
func (s *Service) Status() Status { return s.status }

// Message returns the error message for display, empty unless StatusError.
func (s *Service) Message() string { return s.message }

func (s *Service) record(status Status, message string) {
	s.status = status
	s.message = message
}
