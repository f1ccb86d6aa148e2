package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/muliwe/package-sorter/internal/classifier"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify WIDTH HEIGHT LENGTH MASS",
		Short: "Sort a single package",
		Long: `Sort a single package given its width, height and length in
centimeters and its mass in kilograms. Prints the stack name.`,
		Example: `  sorter classify 10 10 10 5
  sorter classify 160 10 10 25 --explain`,
		// Negative measurements such as -1 would otherwise parse as shorthand flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, raw []string) error {
			args, flagArgs := splitMeasurements(raw)

			// Flag parsing is disabled, so merge --json from the root before parsing.
			cmd.InheritedFlags()
			if err := cmd.Flags().Parse(flagArgs); err != nil {
				return err
			}
			args = append(args, cmd.Flags().Args()...)
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			if err := cobra.ExactArgs(4)(cmd, args); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			explain, _ := cmd.Flags().GetBool("explain")

			clf := classifier.New(classifier.DefaultConfig())
			result, err := clf.ClassifyValues(args[0], args[1], args[2], args[3])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if _, err := fmt.Fprintln(out, result.Stack); err != nil {
				return err
			}
			if explain {
				_, err = fmt.Fprintf(out, "volume: %s cm3\nbulky: %t\nheavy: %t\nreason: %s\n",
					strconv.FormatFloat(result.Volume, 'f', -1, 64), result.Bulky, result.Heavy, result.Reason)
			}
			return err
		},
	}

	cmd.Flags().Bool("explain", false, "Show which thresholds were met")
	return cmd
}

// splitMeasurements separates positional measurements from flags. A token
// that parses as a number is a measurement even with a leading dash, and
// everything after "--" is positional.
func splitMeasurements(raw []string) (args, flags []string) {
	for i, a := range raw {
		if a == "--" {
			return append(args, raw[i+1:]...), flags
		}
		if !strings.HasPrefix(a, "-") || isNumber(a) {
			args = append(args, a)
			continue
		}
		flags = append(flags, a)
	}
	return args, flags
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
