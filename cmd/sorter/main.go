package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/muliwe/package-sorter/internal/server"
)

// Set via -ldflags at build time
var (
	version = server.Version
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sorter",
		Short: "Package sorter - route packages to dispatch stacks",
		Long: `sorter routes packages to the STANDARD, SPECIAL or REJECTED stack
from their dimensions (cm) and mass (kg).

A package is bulky when its volume reaches 1,000,000 cm3 or any dimension
reaches 150 cm, and heavy when its mass reaches 20 kg. Bulky and heavy
packages are rejected; bulky or heavy ones go to the special stack.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newClassifyCmd(),
		newBatchCmd(),
		newDemoCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
