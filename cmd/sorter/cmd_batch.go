package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/muliwe/package-sorter/internal/classifier"
	"github.com/muliwe/package-sorter/internal/manifest"
	"github.com/muliwe/package-sorter/internal/sorting"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Sort every package listed in a YAML or JSON manifest",
		Long: `Sort every package in a manifest of the form:

  packages:
    - id: parcel-1
      width: 10
      height: 10
      length: 10
      mass: 5

Invalid entries are reported alongside the others; the command exits
non-zero when any entry was refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			outcomes := m.Classify(classifier.New(classifier.DefaultConfig()))

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(outcomes); err != nil {
					return err
				}
			} else {
				rows := pterm.TableData{{"ID", "Stack", "Bulky", "Heavy", "Detail"}}
				for _, o := range outcomes {
					if o.Err != nil {
						rows = append(rows, []string{o.ID, "-", "-", "-", sorting.ErrorKind(o.Err) + ": " + o.Error})
						continue
					}
					r := o.Result
					rows = append(rows, []string{
						o.ID, r.Stack.String(), fmt.Sprint(r.Bulky), fmt.Sprint(r.Heavy), r.Reason,
					})
				}
				if err := pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(out).Render(); err != nil {
					return err
				}
			}

			if failed := manifest.Failed(outcomes); failed > 0 {
				return errors.Newf("%d of %d packages refused", failed, len(outcomes))
			}
			return nil
		},
	}
}
