// Package tui is the Bubble Tea front end for the commute visualizer.
//
// The model is a thin event loop around commute.Visualizer: key and network
// events become machine transitions, and View renders whatever state the
// machine is in. All estimation I/O happens inside tea.Cmd functions so the
// update loop never blocks.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/commutree/internal/commute"
)

// copyAckDuration is how long the "copied" acknowledgment stays visible.
const copyAckDuration = 2 * time.Second

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 72
	defaultHeight = 24
)

// postcodeCharLimit bounds postcode entry; UK postcodes max out at 8
// characters including the space.
const postcodeCharLimit = 10

// focusField identifies which form field has keyboard focus.
type focusField int

const (
	focusHome focusField = iota
	focusWork
	focusMethod
)

// methodNotSelected marks the method selector before any choice is made,
// so the machine's required-field validation stays reachable from the UI.
const methodNotSelected = -1

// estimateResultMsg delivers the outcome of an estimation call.
type estimateResultMsg struct {
	estimate commute.EmissionsEstimate
	err      error
}

// copyAckExpiredMsg reverts the transient "copied" acknowledgment. The seq
// field ties the message to the copy that scheduled it: a stale timer from
// an earlier copy must not revert the acknowledgment of a newer one.
type copyAckExpiredMsg struct {
	seq int
}

// Model is the Bubble Tea model for the commute visualizer widget.
type Model struct {
	viz       *commute.Visualizer
	estimator commute.Estimator
	logger    zerolog.Logger

	homeInput textinput.Model
	workInput textinput.Model
	methodIdx int
	focus     focusField

	spin    spinner.Model
	copied  bool
	copySeq int

	width    int
	height   int
	quitting bool
}

// NewModel creates a Model around an initialized Visualizer. When the
// machine was pre-loaded with shared state the model starts in the shared
// view; otherwise it starts on a blank form.
func NewModel(viz *commute.Visualizer, est commute.Estimator, logger zerolog.Logger) Model {
	home := textinput.New()
	home.Placeholder = "SW1A 1AA"
	home.CharLimit = postcodeCharLimit
	home.Focus()

	work := textinput.New()
	work.Placeholder = "EC1A 1BB"
	work.CharLimit = postcodeCharLimit

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = BigStyle

	return Model{
		viz:       viz,
		estimator: est,
		logger:    logger,
		homeInput: home,
		workInput: work,
		methodIdx: methodNotSelected,
		spin:      spin,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and advances the state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.viz.State() != commute.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case estimateResultMsg:
		m.viz.CompleteEstimate(msg.estimate, msg.err)
		return m, nil

	case copyAckExpiredMsg:
		// Only the newest copy's timer may revert the flag.
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input by machine state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.viz.State() {
	case commute.StateLoading:
		// Submission is disabled while a call is in flight.
		return m, nil
	case commute.StateSharedResult:
		return m.handleSharedKey(msg)
	case commute.StateInput, commute.StateResult:
		return m.handleFormKey(msg)
	}
	return m, nil
}

// handleFormKey processes input for the form (shown in both the Input and
// Result states, mirroring a form that stays on the page with the result
// below it).
//
//nolint:exhaustive // Only navigation and submission keys are meaningful here.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab, tea.KeyDown:
		m.setFocus((m.focus + 1) % 3)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus((m.focus + 2) % 3)
		return m, nil

	case tea.KeyLeft, tea.KeyRight:
		if m.focus == focusMethod {
			m.cycleMethod(msg.Type == tea.KeyRight)
			return m, nil
		}

	case tea.KeyCtrlS:
		if m.viz.State() == commute.StateResult && m.viz.CopyShareLink() {
			return m.showCopyAck()
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleSharedKey processes input for the read-only shared view.
func (m Model) handleSharedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc || msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "r":
		m.viz.Reset()
		m.homeInput.SetValue("")
		m.workInput.SetValue("")
		m.methodIdx = methodNotSelected
		m.setFocus(focusHome)
		return m, textinput.Blink

	case msg.String() == "c":
		if m.viz.CopyShareLink() {
			return m.showCopyAck()
		}
	}
	return m, nil
}

// submit validates the form through the machine and, when accepted, starts
// the estimation call and the loading spinner.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := commute.CommuteInput{
		HomePostcode: m.homeInput.Value(),
		WorkPostcode: m.workInput.Value(),
	}
	if m.methodIdx != methodNotSelected {
		input.TravelMethod = commute.Methods()[m.methodIdx]
	}

	m.viz.SetInput(input)
	if err := m.viz.BeginSubmit(); err != nil {
		// Validation failed: the machine stays in Input and View picks up
		// the inline message. No remote call is made.
		return m, nil
	}

	m.copied = false
	return m, tea.Batch(m.spin.Tick, m.estimateCmd(input))
}

// estimateCmd runs the estimation call off the update loop.
func (m Model) estimateCmd(input commute.CommuteInput) tea.Cmd {
	est := m.estimator
	logger := m.logger
	return func() tea.Msg {
		estimate, err := est.EstimateSingleJourney(context.Background(), input)
		if err != nil {
			logger.Debug().Err(err).Msg("estimation call failed")
		}
		return estimateResultMsg{estimate: estimate, err: err}
	}
}

// showCopyAck flips the acknowledgment flag and schedules its expiry,
// replacing any still-pending timer via the sequence counter.
func (m Model) showCopyAck() (tea.Model, tea.Cmd) {
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(copyAckDuration, func(time.Time) tea.Msg {
		return copyAckExpiredMsg{seq: seq}
	})
}

// setFocus moves keyboard focus between form fields.
func (m *Model) setFocus(f focusField) {
	m.focus = f
	m.homeInput.Blur()
	m.workInput.Blur()
	switch f {
	case focusHome:
		m.homeInput.Focus()
	case focusWork:
		m.workInput.Focus()
	case focusMethod:
	}
}

// cycleMethod steps the travel-method selector.
func (m *Model) cycleMethod(forward bool) {
	methods := commute.Methods()
	switch {
	case m.methodIdx == methodNotSelected:
		m.methodIdx = 0
	case forward:
		m.methodIdx = (m.methodIdx + 1) % len(methods)
	default:
		m.methodIdx = (m.methodIdx + len(methods) - 1) % len(methods)
	}
}

// updateFocusedInput forwards remaining key events to the focused textinput.
func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusHome:
		m.homeInput, cmd = m.homeInput.Update(msg)
	case focusWork:
		m.workInput, cmd = m.workInput.Update(msg)
	case focusMethod:
	}
	return m, cmd
}
