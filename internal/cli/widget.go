package cli

import (
	"fmt"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/commutree/internal/clipboard"
	"github.com/rshade/commutree/internal/commute"
	"github.com/rshade/commutree/internal/config"
	"github.com/rshade/commutree/internal/estimator"
	"github.com/rshade/commutree/internal/history"
	"github.com/rshade/commutree/internal/logging"
	"github.com/rshade/commutree/internal/tui"
)

// newVisualizer builds the state machine with its real capabilities: the
// system clipboard and the on-disk share-link store.
func newVisualizer(cfg *config.Config) (*commute.Visualizer, *history.Store) {
	store := history.New(config.Dir())
	viz := commute.NewVisualizer(
		cfg.Share.BaseURL,
		clipboard.System{},
		store,
		logging.ComponentLogger(logger, "visualizer"),
	)
	return viz, store
}

// newEstimator builds the estimation client from config.
func newEstimator(cfg *config.Config) commute.Estimator {
	return estimator.New(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		logging.ComponentLogger(logger, "estimator"),
	)
}

// runWidget opens the interactive widget. A persisted share link re-enters
// the shared view, exactly as a page reload would; otherwise the blank form
// is shown.
func runWidget(cmd *cobra.Command, cfg *config.Config) error {
	viz, store := newVisualizer(cfg)

	if link, ok := store.Load(); ok {
		if u, err := url.Parse(link); err == nil {
			viz.LoadShared(u.Query())
		}
	}

	return runProgram(cmd, cfg, viz)
}

// runProgram starts the Bubble Tea program around a prepared visualizer.
func runProgram(cmd *cobra.Command, cfg *config.Config, viz *commute.Visualizer) error {
	model := tui.NewModel(viz, newEstimator(cfg), logging.ComponentLogger(logger, "tui"))

	p := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running widget: %w", err)
	}
	return nil
}
