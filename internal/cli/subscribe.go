package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/commutree/internal/leadcapture"
	"github.com/rshade/commutree/internal/logging"
	"github.com/rshade/commutree/internal/tui"
)

// newSubscribeCmd creates the newsletter signup command. Lead capture is
// peripheral: its failures never touch calculator state.
func newSubscribeCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:     "subscribe",
		Short:   "Subscribe to the commutree newsletter",
		Example: `  commutree subscribe --email you@example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)

			svc := leadcapture.New(
				cfg.LeadCapture.URL,
				time.Duration(cfg.API.TimeoutSeconds)*time.Second,
				logging.ComponentLogger(logger, "leadcapture"),
			)

			if err := svc.Submit(cmd.Context(), email); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), tui.ErrorStyle.Render(svc.Message()))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.HeaderStyle.Render("Thanks, you're subscribed!"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address to subscribe")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
