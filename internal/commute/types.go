// Package commute implements the commute carbon visualizer core: input
// validation, the trees-needed projection, shareable-link encoding, and the
// state machine that ties them to a remote emissions estimator.
//
// The package holds no I/O of its own. Network, clipboard, and share-state
// persistence are injected through the Estimator, ClipboardWriter, and
// HistoryResetter capability interfaces so the machine can be driven
// deterministically in tests.
package commute

import "strings"

// CommuteInput is the raw form data for an estimation request.
type CommuteInput struct {
	// HomePostcode is the journey origin, free text.
	HomePostcode string

	// WorkPostcode is the journey destination, free text.
	WorkPostcode string

	// TravelMethod is the selected mode of transport.
	TravelMethod TravelMethod
}

// Normalized returns a copy of the input ready for transmission: postcodes
// with spaces removed and uppercased, travel method lowercased.
func (i CommuteInput) Normalized() CommuteInput {
	return CommuteInput{
		HomePostcode: NormalizePostcode(i.HomePostcode),
		WorkPostcode: NormalizePostcode(i.WorkPostcode),
		TravelMethod: TravelMethod(strings.ToLower(string(i.TravelMethod))),
	}
}

// Validate reports the first missing required field, if any. All three
// fields are required before an estimation call may be attempted.
func (i CommuteInput) Validate() error {
	if strings.TrimSpace(i.HomePostcode) == "" {
		return ErrMissingHomePostcode
	}
	if strings.TrimSpace(i.WorkPostcode) == "" {
		return ErrMissingWorkPostcode
	}
	if i.TravelMethod == "" {
		return ErrMissingTravelMethod
	}
	return nil
}

// NormalizePostcode strips spaces from a postcode and uppercases it.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
}

// EmissionsEstimate is a one-way emissions value returned by the estimation
// service. It is immutable; a new estimation replaces it wholesale.
type EmissionsEstimate struct {
	// OneWayKgCO2e is the carbon output for a single commute leg.
	OneWayKgCO2e float64
}

// ShareableState is the subset of view state encoded into a share link.
// Postcodes are deliberately absent and must never be added.
type ShareableState struct {
	// TreesNeeded is the precomputed annual offset tree count.
	TreesNeeded int

	// OneWayKgCO2e is the one-way emissions the count was derived from.
	OneWayKgCO2e float64

	// TravelMethod is an optional display label (e.g. "Bike").
	TravelMethod string
}

// State identifies the visualizer's current view.
type State int

const (
	// StateInput collects form data; no result is available.
	StateInput State = iota

	// StateLoading has an estimation call in flight. Reachable only from
	// StateInput.
	StateLoading

	// StateResult displays an estimate produced by this session.
	StateResult

	// StateSharedResult displays an externally supplied estimate decoded
	// from a share link.
	StateSharedResult
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInput:
		return "input"
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	case StateSharedResult:
		return "shared-result"
	default:
		return "unknown"
	}
}
