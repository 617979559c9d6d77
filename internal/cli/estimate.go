package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/commutree/internal/commute"
	"github.com/rshade/commutree/internal/tui"
)

// Output formats for the estimate command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// estimateOutput is the machine-readable result shape.
type estimateOutput struct {
	TreesNeeded  int     `json:"trees_needed"`
	OneWayKgCO2e float64 `json:"one_way_kgCO2e"`
	AnnualKgCO2e float64 `json:"annual_kgCO2e"`
	TravelMethod string  `json:"travel_method"`
	ShareURL     string  `json:"share_url"`
}

// newEstimateCmd creates the non-interactive estimate command. With no
// flags on a terminal it opens the interactive widget instead.
func newEstimateCmd() *cobra.Command {
	var (
		home   string
		work   string
		method string
		output string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate commute emissions and the trees needed to offset them",
		Example: `  commutree estimate --home "SW1A 1AA" --work "EC1A 1BB" --method bike
  commutree estimate --home "SW1A 1AA" --work "EC1A 1BB" --method national-rail --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)

			if home == "" && work == "" && method == "" && isTerminal(os.Stdout) {
				return runWidget(cmd, cfg)
			}

			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unsupported output format: %s", output)
			}

			input := commute.CommuteInput{HomePostcode: home, WorkPostcode: work}
			if method != "" {
				parsed, err := commute.ParseTravelMethod(method)
				if err != nil {
					return fmt.Errorf("travel method %q: %w (supported: %s)", method, err, methodList())
				}
				input.TravelMethod = parsed
			}
			if err := input.Validate(); err != nil {
				return err
			}

			estimate, err := newEstimator(cfg).EstimateSingleJourney(cmd.Context(), input)
			if err != nil {
				return err
			}

			trees := commute.TreesNeeded(estimate.OneWayKgCO2e)
			shareURL, err := commute.EncodeShareLink(cfg.Share.BaseURL, commute.ShareableState{
				TreesNeeded:  trees,
				OneWayKgCO2e: estimate.OneWayKgCO2e,
				TravelMethod: input.TravelMethod.Label(),
			})
			if err != nil {
				return err
			}

			result := estimateOutput{
				TreesNeeded:  trees,
				OneWayKgCO2e: estimate.OneWayKgCO2e,
				AnnualKgCO2e: commute.AnnualEmissionsKg(estimate.OneWayKgCO2e),
				TravelMethod: input.TravelMethod.Label(),
				ShareURL:     shareURL,
			}

			if output == outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return renderEstimateTable(cmd, result)
		},
	}

	cmd.Flags().StringVar(&home, "home", "", "home postcode")
	cmd.Flags().StringVar(&work, "work", "", "work postcode")
	cmd.Flags().StringVar(&method, "method", "", "travel method (e.g. bike, petrol-car, national-rail)")
	cmd.Flags().StringVar(&output, "output", outputTable, "output format: table or json")

	return cmd
}

// renderEstimateTable prints a styled summary of the estimate.
func renderEstimateTable(cmd *cobra.Command, result estimateOutput) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, tui.HeaderStyle.Render("Your commute, offset in trees"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n",
		tui.LabelStyle.Render("Trees needed per year:"),
		tui.ValueStyle.Render(commute.FormatTrees(result.TreesNeeded)))
	fmt.Fprintf(out, "%s %s kg CO2e\n",
		tui.LabelStyle.Render("One-way emissions:    "),
		tui.ValueStyle.Render(commute.FormatKg(result.OneWayKgCO2e)))
	fmt.Fprintf(out, "%s %s kg CO2e\n",
		tui.LabelStyle.Render("Annualized:           "),
		tui.ValueStyle.Render(commute.FormatAnnualKg(result.AnnualKgCO2e)))
	fmt.Fprintf(out, "%s %s\n",
		tui.LabelStyle.Render("Travel method:        "),
		tui.ValueStyle.Render(result.TravelMethod))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", tui.LabelStyle.Render("Share:"), result.ShareURL)
	return nil
}

// methodList returns the supported wire identifiers for error messages.
func methodList() string {
	list := ""
	for i, m := range commute.Methods() {
		if i > 0 {
			list += ", "
		}
		list += string(m)
	}
	return list
}
