package commute

import (
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShareBase = "https://commutree.app/share"

// spyClipboard records writes and can simulate failures.
type spyClipboard struct {
	written []string
	err     error
}

func (c *spyClipboard) WriteString(text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, text)
	return nil
}

// spyHistory records share-parameter clears.
type spyHistory struct {
	cleared int
	err     error
}

func (h *spyHistory) ClearShareParams() error {
	h.cleared++
	return h.err
}

func newTestVisualizer(clip ClipboardWriter, hist HistoryResetter) *Visualizer {
	return NewVisualizer(testShareBase, clip, hist, zerolog.Nop())
}

func validInput() CommuteInput {
	return CommuteInput{
		HomePostcode: "SW1A 1AA",
		WorkPostcode: "EC1A 1BB",
		TravelMethod: MethodBike,
	}
}

func TestVisualizerStartsInInput(t *testing.T) {
	v := newTestVisualizer(nil, nil)

	assert.Equal(t, StateInput, v.State())
	assert.Zero(t, v.TreesNeeded())
	_, ok := v.OneWayEmissionsKg()
	assert.False(t, ok)
}

func TestBeginSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CommuteInput
		wantErr error
	}{
		{
			name:    "missing home postcode",
			input:   CommuteInput{WorkPostcode: "EC1A 1BB", TravelMethod: MethodBike},
			wantErr: ErrMissingHomePostcode,
		},
		{
			name:    "whitespace home postcode",
			input:   CommuteInput{HomePostcode: "   ", WorkPostcode: "EC1A 1BB", TravelMethod: MethodBike},
			wantErr: ErrMissingHomePostcode,
		},
		{
			name:    "missing work postcode",
			input:   CommuteInput{HomePostcode: "SW1A 1AA", TravelMethod: MethodBike},
			wantErr: ErrMissingWorkPostcode,
		},
		{
			name:    "missing travel method",
			input:   CommuteInput{HomePostcode: "SW1A 1AA", WorkPostcode: "EC1A 1BB"},
			wantErr: ErrMissingTravelMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVisualizer(nil, nil)
			v.SetInput(tt.input)

			err := v.BeginSubmit()
			require.ErrorIs(t, err, tt.wantErr)

			// Validation failures never leave the input state and carry
			// an inline message.
			assert.Equal(t, StateInput, v.State())
			assert.NotEmpty(t, v.ErrorMessage())
		})
	}
}

func TestBeginSubmitValid(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())

	require.NoError(t, v.BeginSubmit())
	assert.Equal(t, StateLoading, v.State())
	assert.Empty(t, v.ErrorMessage())
}

func TestBeginSubmitRefusedWhileLoading(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())

	assert.ErrorIs(t, v.BeginSubmit(), ErrEstimateInFlight)
	assert.Equal(t, StateLoading, v.State())
}

func TestCompleteEstimateSuccess(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())

	v.CompleteEstimate(EmissionsEstimate{OneWayKgCO2e: 5.0}, nil)

	assert.Equal(t, StateResult, v.State())
	emissions, ok := v.OneWayEmissionsKg()
	require.True(t, ok)
	assert.InDelta(t, 5.0, emissions, 1e-9)
	assert.Equal(t, 92, v.TreesNeeded())
	assert.Equal(t, "Bike", v.MethodLabel())
}

func TestCompleteEstimateFailure(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())

	v.CompleteEstimate(EmissionsEstimate{}, constError("Failed to calculate carbon emissions"))

	// Failure reverts to input with a message and no partial result.
	assert.Equal(t, StateInput, v.State())
	assert.Equal(t, "Failed to calculate carbon emissions", v.ErrorMessage())
	assert.Zero(t, v.TreesNeeded())
	_, ok := v.OneWayEmissionsKg()
	assert.False(t, ok)
}

func TestCompleteEstimateIgnoredOutsideLoading(t *testing.T) {
	v := newTestVisualizer(nil, nil)

	v.CompleteEstimate(EmissionsEstimate{OneWayKgCO2e: 5.0}, nil)
	assert.Equal(t, StateInput, v.State())
	assert.Zero(t, v.TreesNeeded())
}

func TestSetInputIgnoredWhileLoadingAndShared(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())

	v.SetInput(CommuteInput{HomePostcode: "XX1 1XX"})
	assert.Equal(t, validInput(), v.Input())

	shared := newTestVisualizer(nil, nil)
	require.True(t, shared.LoadShared(mustQuery(t, "trees=92&emissions=5.0")))
	shared.SetInput(CommuteInput{HomePostcode: "XX1 1XX"})
	assert.Equal(t, CommuteInput{}, shared.Input())
}

func TestLoadShared(t *testing.T) {
	v := newTestVisualizer(nil, nil)

	ok := v.LoadShared(mustQuery(t, "trees=92&emissions=5.0&method=Bike"))
	require.True(t, ok)

	assert.Equal(t, StateSharedResult, v.State())
	assert.Equal(t, 92, v.TreesNeeded())
	emissions, has := v.OneWayEmissionsKg()
	require.True(t, has)
	assert.InDelta(t, 5.0, emissions, 1e-9)
	assert.Equal(t, "Bike", v.MethodLabel())
	// Shared view never populates the form.
	assert.Equal(t, CommuteInput{}, v.Input())
}

func TestLoadSharedTrustsDecodedTrees(t *testing.T) {
	// A decoded link is already annualized and computed; the machine must
	// not re-derive the count even when it disagrees with the formula.
	v := newTestVisualizer(nil, nil)
	require.True(t, v.LoadShared(mustQuery(t, "trees=7&emissions=5.0")))

	assert.Equal(t, 7, v.TreesNeeded())
}

func TestLoadSharedMalformedStaysInInput(t *testing.T) {
	tests := []string{
		"",
		"trees=92",
		"emissions=5.0",
		"trees=abc&emissions=5.0",
		"trees=92&emissions=xyz",
	}

	for _, query := range tests {
		v := newTestVisualizer(nil, nil)
		assert.False(t, v.LoadShared(mustQuery(t, query)), "query %q", query)
		assert.Equal(t, StateInput, v.State())
		// Silent degrade: no user-facing error either.
		assert.Empty(t, v.ErrorMessage())
	}
}

func TestReset(t *testing.T) {
	hist := &spyHistory{}
	v := newTestVisualizer(nil, hist)
	require.True(t, v.LoadShared(mustQuery(t, "trees=92&emissions=5.0&method=Bike")))

	v.Reset()

	assert.Equal(t, StateInput, v.State())
	assert.Equal(t, 1, hist.cleared, "persisted share parameters must be cleared")
	assert.Zero(t, v.TreesNeeded())
	assert.Empty(t, v.ErrorMessage())
	assert.Equal(t, CommuteInput{}, v.Input())
}

func TestResetSurvivesHistoryFailure(t *testing.T) {
	hist := &spyHistory{err: constError("disk full")}
	v := newTestVisualizer(nil, hist)
	require.True(t, v.LoadShared(mustQuery(t, "trees=92&emissions=5.0")))

	v.Reset()
	assert.Equal(t, StateInput, v.State())
}

func TestShareLink(t *testing.T) {
	v := newTestVisualizer(nil, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())
	v.CompleteEstimate(EmissionsEstimate{OneWayKgCO2e: 5.0}, nil)

	link, err := v.ShareLink()
	require.NoError(t, err)
	assert.Equal(t, "https://commutree.app/share?trees=92&emissions=5.00&method=Bike", link)
	// Postcodes were used to produce the estimate but never appear.
	assert.NotContains(t, link, "SW1A")
	assert.NotContains(t, link, "EC1A")
}

func TestShareLinkRequiresEstimate(t *testing.T) {
	v := newTestVisualizer(nil, nil)

	_, err := v.ShareLink()
	assert.ErrorIs(t, err, ErrNoEstimate)

	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())
	_, err = v.ShareLink()
	assert.ErrorIs(t, err, ErrNoEstimate)
}

func TestShareLinkFromSharedView(t *testing.T) {
	// Encoding from a shared view reproduces the incoming link.
	v := newTestVisualizer(nil, nil)
	require.True(t, v.LoadShared(mustQuery(t, "trees=46&emissions=2.50&method=Bike")))

	link, err := v.ShareLink()
	require.NoError(t, err)
	assert.Equal(t, "https://commutree.app/share?trees=46&emissions=2.50&method=Bike", link)
}

func TestCopyShareLink(t *testing.T) {
	clip := &spyClipboard{}
	v := newTestVisualizer(clip, nil)
	v.SetInput(validInput())
	require.NoError(t, v.BeginSubmit())
	v.CompleteEstimate(EmissionsEstimate{OneWayKgCO2e: 2.5}, nil)

	assert.True(t, v.CopyShareLink())
	require.Len(t, clip.written, 1)
	assert.Equal(t, "https://commutree.app/share?trees=46&emissions=2.50&method=Bike", clip.written[0])
}

func TestCopyShareLinkFailuresAreSilent(t *testing.T) {
	t.Run("no estimate", func(t *testing.T) {
		clip := &spyClipboard{}
		v := newTestVisualizer(clip, nil)
		assert.False(t, v.CopyShareLink())
		assert.Empty(t, clip.written)
	})

	t.Run("clipboard error", func(t *testing.T) {
		clip := &spyClipboard{err: constError("no display")}
		v := newTestVisualizer(clip, nil)
		require.True(t, v.LoadShared(mustQuery(t, "trees=92&emissions=5.0")))

		assert.False(t, v.CopyShareLink())
		// State is untouched by a copy failure.
		assert.Equal(t, StateSharedResult, v.State())
	})

	t.Run("nil clipboard", func(t *testing.T) {
		v := newTestVisualizer(nil, nil)
		require.True(t, v.LoadShared(mustQuery(t, "trees=92&emissions=5.0")))
		assert.False(t, v.CopyShareLink())
	})
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}
