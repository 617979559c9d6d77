package commute

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation and state errors. Comparable with errors.Is().
var (
	// ErrMissingHomePostcode indicates an empty home postcode at submission.
	ErrMissingHomePostcode = constError("home postcode is required")

	// ErrMissingWorkPostcode indicates an empty work postcode at submission.
	ErrMissingWorkPostcode = constError("work postcode is required")

	// ErrMissingTravelMethod indicates no travel method was selected.
	ErrMissingTravelMethod = constError("travel method is required")

	// ErrUnknownTravelMethod indicates a value outside the supported set.
	ErrUnknownTravelMethod = constError("unknown travel method")

	// ErrNoEstimate indicates a share link was requested before any
	// estimate exists.
	ErrNoEstimate = constError("no estimate available")

	// ErrEstimateInFlight indicates a submission while a call is already
	// in flight; only one estimation call may run at a time.
	ErrEstimateInFlight = constError("an estimation call is already in flight")
)
