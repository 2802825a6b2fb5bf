package main

import (
	"strings"

	"github.com/spf13/cobra"

	"hwcheck/internal/faults"
)

func newMissingCommand(ctx *commandContext) *cobra.Command {
	var flags inputFlags
	var output string
	var workers int

	cmd := &cobra.Command{
		Use:   "missing [FILE...]",
		Short: "Export the students who have not submitted",
		Long: `Export the students who have not submitted as an .xlsx or .csv file.

The export uses the roster's own column headers when the ID column was found
by its header, so the file can be pasted back into the class spreadsheet.`,
		Example: `  hwcheck missing --roster class.xlsx --dir ./homework --output missing.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(output)
			if path == "" {
				return faults.Wrap(faults.ErrValidation, "cli", "missing", "--output is required", nil)
			}
			_, c, handled, err := classifyInputs(cmd, ctx, cfg, flags, workers, args)
			if err != nil || handled {
				return err
			}
			return exportMissing(cmd.OutOrStdout(), c, path)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination .xlsx or .csv file")
	cmd.Flags().IntVarP(&workers, "workers", "w", -1, "Parallel hashing workers (0 uses one per CPU)")

	return cmd
}
