package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/commutree/internal/commute"
	"github.com/rshade/commutree/internal/tui"
)

// newViewCmd creates the shared-link viewer command.
//
// A link whose parameters are absent or malformed is not treated as a user
// error on a terminal: the widget simply opens on the blank input form,
// matching the silent-degrade policy for share-link decoding.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "view <share-url>",
		Short:   "Open a shared commute result",
		Example: `  commutree view "https://commutree.app/share?trees=92&emissions=5.00&method=Bike"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCmd(cmd)
			link := args[0]

			viz, store := newVisualizer(cfg)

			shared, ok := commute.DecodeShareLink(link)
			if !ok {
				logger.Debug().Str("link", link).Msg("share link has no decodable result, opening input view")
				if !isTerminal(os.Stdout) {
					return fmt.Errorf("share link has no decodable result")
				}
				return runProgram(cmd, cfg, viz)
			}

			// Persist so a later plain `commutree` behaves like a reload of
			// the shared page; reset inside the widget clears it again.
			if err := store.Save(link); err != nil {
				logger.Warn().Err(err).Msg("could not persist share link")
			}

			if !isTerminal(os.Stdout) {
				return renderSharedPlain(cmd, shared)
			}

			u, err := url.Parse(link)
			if err != nil {
				return fmt.Errorf("parsing share link: %w", err)
			}
			viz.LoadShared(u.Query())
			return runProgram(cmd, cfg, viz)
		},
	}
}

// renderSharedPlain prints a shared result without the interactive widget.
func renderSharedPlain(cmd *cobra.Command, shared commute.ShareableState) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, tui.HeaderStyle.Render("A commute someone shared with you"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n",
		tui.LabelStyle.Render("Trees needed per year:"),
		tui.ValueStyle.Render(commute.FormatTrees(shared.TreesNeeded)))
	fmt.Fprintf(out, "%s %s kg CO2e\n",
		tui.LabelStyle.Render("One-way emissions:    "),
		tui.ValueStyle.Render(commute.FormatKg(shared.OneWayKgCO2e)))
	if shared.TravelMethod != "" {
		fmt.Fprintf(out, "%s %s\n",
			tui.LabelStyle.Render("Travel method:        "),
			tui.ValueStyle.Render(shared.TravelMethod))
	}
	return nil
}
