package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/muliwe/package-sorter/internal/demo"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in example packages and report pass/fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := demo.Run(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !report.OK() {
				return errors.Newf("demo failed: %d/%d cases passed, %d/%d error cases refused",
					report.Passed, report.Total, report.ErrorPassed, report.ErrorTotal)
			}
			return nil
		},
	}
}
