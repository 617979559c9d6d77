package commute

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// Estimator obtains a one-way emissions estimate for a commute from a
// remote service. Implementations receive already-validated input and are
// expected to normalize it before transmission.
type Estimator interface {
	EstimateSingleJourney(ctx context.Context, input CommuteInput) (EmissionsEstimate, error)
}

// ClipboardWriter is a write-only clipboard capability.
type ClipboardWriter interface {
	WriteString(text string) error
}

// HistoryResetter clears any persisted share parameters so a later reload
// does not re-enter the shared view.
type HistoryResetter interface {
	ClearShareParams() error
}

// Visualizer is the commute visualization state machine.
//
// It owns the form input, the current estimate, and any decoded shared
// state, and moves between Input, Loading, Result, and SharedResult per
// discrete events. All transitions happen on the caller's goroutine; the
// machine performs no I/O beyond the injected capabilities.
type Visualizer struct {
	state    State
	input    CommuteInput
	estimate *EmissionsEstimate
	shared   *ShareableState
	errMsg   string

	shareBase string
	clipboard ClipboardWriter
	history   HistoryResetter
	logger    zerolog.Logger
}

// NewVisualizer creates a Visualizer in the Input state.
//
// shareBase is the page address share links are built from; clipboard and
// history may be nil, in which case copying and share-state clearing become
// no-ops.
func NewVisualizer(shareBase string, clipboard ClipboardWriter, history HistoryResetter, logger zerolog.Logger) *Visualizer {
	return &Visualizer{
		state:     StateInput,
		shareBase: shareBase,
		clipboard: clipboard,
		history:   history,
		logger:    logger,
	}
}

// State returns the machine's current state.
func (v *Visualizer) State() State { return v.state }

// Input returns the current form data.
func (v *Visualizer) Input() CommuteInput { return v.input }

// SetInput replaces the form data. Accepted only in the Input and Result
// states; while a call is in flight or in shared view the form is inactive.
func (v *Visualizer) SetInput(input CommuteInput) {
	if v.state == StateLoading || v.state == StateSharedResult {
		return
	}
	v.input = input
}

// ErrorMessage returns the message to display in the Input state, or empty.
func (v *Visualizer) ErrorMessage() string { return v.errMsg }

// LoadShared attempts to enter the shared view from incoming query
// parameters. It returns true and transitions to SharedResult when both a
// trees count and an emissions value decode successfully; otherwise the
// machine stays in Input and the failure is logged at debug level only.
//
// A decoded state is treated as already annualized and computed: the trees
// count from the link is displayed as-is, never re-derived.
func (v *Visualizer) LoadShared(q url.Values) bool {
	shared, ok := DecodeShareParams(q)
	if !ok {
		v.logger.Debug().Msg("share parameters absent or malformed, staying in input view")
		return false
	}

	v.shared = &shared
	v.estimate = nil
	v.input = CommuteInput{}
	v.errMsg = ""
	v.state = StateSharedResult

	v.logger.Info().
		Int("trees", shared.TreesNeeded).
		Float64("emissions_kg", shared.OneWayKgCO2e).
		Str("method", shared.TravelMethod).
		Msg("entered shared view")
	return true
}

// BeginSubmit validates the current input and, if complete, moves to
// Loading. On a validation failure the machine stays in Input with the
// error surfaced via ErrorMessage and no remote call is made.
//
// The caller is responsible for running the Estimator and reporting the
// outcome via CompleteEstimate; exactly one call may be in flight at a time
// and BeginSubmit refuses re-entry while Loading.
func (v *Visualizer) BeginSubmit() error {
	if v.state == StateLoading {
		return ErrEstimateInFlight
	}

	if err := v.input.Validate(); err != nil {
		v.errMsg = err.Error()
		v.state = StateInput
		return err
	}

	v.errMsg = ""
	v.estimate = nil
	v.state = StateLoading
	return nil
}

// CompleteEstimate consumes the outcome of an estimation call.
//
// On success the machine moves to Result with the new estimate. On failure
// it returns to Input carrying the error's message; no partial state is
// kept. Calls outside the Loading state are ignored.
func (v *Visualizer) CompleteEstimate(estimate EmissionsEstimate, err error) {
	if v.state != StateLoading {
		v.logger.Warn().Str("state", v.state.String()).Msg("estimate completion ignored outside loading state")
		return
	}

	if err != nil {
		v.estimate = nil
		v.errMsg = err.Error()
		v.state = StateInput
		v.logger.Warn().Err(err).Msg("estimation failed")
		return
	}

	v.estimate = &estimate
	v.errMsg = ""
	v.state = StateResult
}

// Reset leaves the shared view: persisted share parameters are cleared so a
// reload lands on the blank form, and the machine returns to Input with no
// residual estimate.
func (v *Visualizer) Reset() {
	if v.history != nil {
		if err := v.history.ClearShareParams(); err != nil {
			v.logger.Warn().Err(err).Msg("could not clear persisted share parameters")
		}
	}
	v.shared = nil
	v.estimate = nil
	v.input = CommuteInput{}
	v.errMsg = ""
	v.state = StateInput
}

// OneWayEmissionsKg returns the displayed one-way emissions value and
// whether one is available.
func (v *Visualizer) OneWayEmissionsKg() (float64, bool) {
	switch v.state {
	case StateResult:
		if v.estimate != nil {
			return v.estimate.OneWayKgCO2e, true
		}
	case StateSharedResult:
		if v.shared != nil {
			return v.shared.OneWayKgCO2e, true
		}
	case StateInput, StateLoading:
	}
	return 0, false
}

// TreesNeeded returns the tree count for the current view.
//
// In Result it is recomputed from the live estimate; in SharedResult the
// decoded count is authoritative so the encode and decode paths can never
// disagree. Everywhere else it is zero.
func (v *Visualizer) TreesNeeded() int {
	switch v.state {
	case StateResult:
		if v.estimate != nil {
			return TreesNeeded(v.estimate.OneWayKgCO2e)
		}
	case StateSharedResult:
		if v.shared != nil {
			return v.shared.TreesNeeded
		}
	case StateInput, StateLoading:
	}
	return 0
}

// MethodLabel returns the travel-method label for the current view, or
// empty when none applies.
func (v *Visualizer) MethodLabel() string {
	switch v.state {
	case StateSharedResult:
		if v.shared != nil {
			return v.shared.TravelMethod
		}
	case StateResult:
		return v.input.TravelMethod.Label()
	case StateInput, StateLoading:
	}
	return ""
}

// ShareLink encodes the current view into a shareable URL.
//
// It requires an estimate (Result or SharedResult); in any other state it
// returns ErrNoEstimate. Postcodes are never part of the link.
func (v *Visualizer) ShareLink() (string, error) {
	emissions, ok := v.OneWayEmissionsKg()
	if !ok {
		return "", ErrNoEstimate
	}

	return EncodeShareLink(v.shareBase, ShareableState{
		TreesNeeded:  v.TreesNeeded(),
		OneWayKgCO2e: emissions,
		TravelMethod: v.MethodLabel(),
	})
}

// CopyShareLink writes the encoded share link to the clipboard capability.
//
// It returns true when the caller should show the transient "copied"
// acknowledgment. Clipboard failures are logged and swallowed: copying is a
// convenience, not a critical path, so no user-facing error state exists
// for it.
func (v *Visualizer) CopyShareLink() bool {
	link, err := v.ShareLink()
	if err != nil {
		v.logger.Debug().Err(err).Msg("share link requested without an estimate")
		return false
	}
	if v.clipboard == nil {
		return false
	}
	if err := v.clipboard.WriteString(link); err != nil {
		v.logger.Warn().Err(err).Msg("clipboard write failed")
		return false
	}
	return true
}
