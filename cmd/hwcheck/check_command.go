package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"hwcheck/internal/classify"
	"hwcheck/internal/config"
	"hwcheck/internal/digest"
	"hwcheck/internal/faults"
	"hwcheck/internal/logging"
	"hwcheck/internal/report"
)

type checkOptions struct {
	inputs        inputFlags
	format        string
	color         string
	exportMissing string
	workers       int
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [FILE...]",
		Short: "Match submissions against the roster and print a report",
		Long: `Match submissions against the roster and print a report.

Submissions come either from --dir (every regular file directly inside the
directory, modification time as arrival time) or from file arguments (read
into memory and stamped with the current time, like a browser upload).`,
		Example: `  hwcheck check --roster class.xlsx --dir ./homework
  hwcheck check --roster class.csv --deadline "2024-03-04 23:59" hw/*.py
  hwcheck check -r class.csv -d ./homework --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, ctx, opts, args)
		},
	}

	opts.inputs.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: table, json, or yaml (default from config)")
	cmd.Flags().StringVar(&opts.color, "color", "", "Colour mode: auto, always, or never (default from config)")
	cmd.Flags().StringVar(&opts.exportMissing, "export-missing", "", "Also write the missing-student list to this .xlsx or .csv file")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", -1, "Parallel hashing workers (0 uses one per CPU)")

	return cmd
}

func runCheck(cmd *cobra.Command, ctx *commandContext, opts *checkOptions, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "" {
		format = cfg.Report.Format
	}
	switch format {
	case "table", "json", "yaml":
	default:
		return faults.Wrap(faults.ErrValidation, "cli", "check", fmt.Sprintf("unknown format %q (use table, json, or yaml)", format), nil)
	}

	rep, c, handled, err := classifyInputs(cmd, ctx, cfg, opts.inputs, opts.workers, args)
	if err != nil || handled {
		return err
	}

	if path := strings.TrimSpace(opts.exportMissing); path != "" {
		// Keep stdout parseable for machine formats.
		notice := cmd.OutOrStdout()
		if format != "table" {
			notice = cmd.ErrOrStderr()
		}
		if err := exportMissing(notice, c, path); err != nil {
			return err
		}
	}

	switch format {
	case "json":
		return writeJSON(cmd, rep)
	case "yaml":
		return writeYAML(cmd, rep)
	default:
		mode := cfg.Report.Color
		if strings.TrimSpace(opts.color) != "" {
			mode = opts.color
		}
		renderReport(cmd.OutOrStdout(), rep, colorMode(mode, cmd.OutOrStdout()))
		return nil
	}
}

// classifyInputs loads the roster and batch and runs the engine. handled is
// true when an input is still missing and the waiting prompt was printed.
func classifyInputs(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, flags inputFlags, workers int, args []string) (report.Report, *classify.Classification, bool, error) {
	logger, closeLog, err := ctx.logger()
	if err != nil {
		return report.Report{}, nil, false, err
	}
	defer func() { _ = closeLog() }()
	cliLogger := logging.NewComponentLogger(logger, "cli")

	inputs, err := ctx.loadInputs(cfg, flags, args)
	if err != nil {
		switch faults.SeverityOf(err) {
		case faults.SeverityWaiting:
			fmt.Fprintln(cmd.OutOrStdout(), waitingPrompt(flags, args))
			return report.Report{}, nil, true, nil
		case faults.SeverityDegraded:
			logging.WarnWithContext(cliLogger, "submissions unavailable", "inputs_unreadable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "no batch could be classified"),
			)
		}
		return report.Report{}, nil, false, err
	}

	hasher, err := digest.New(cfg.Hashing.Algorithm, cfg.Hashing.ChunkSize)
	if err != nil {
		return report.Report{}, nil, false, err
	}

	runCtx, runID := logging.NewRunContext(cmd.Context())
	logging.WithContext(runCtx, cliLogger).Debug("classification starting",
		slog.Int("roster_size", inputs.roster.Len()),
		slog.Int("files", len(inputs.files)),
		slog.String("algorithm", hasher.Algorithm()),
	)

	// Classify attaches the run ID from runCtx itself.
	c := classify.Classify(runCtx, inputs.roster, inputs.files, classify.Options{
		Deadline: inputs.deadline,
		Hasher:   hasher,
		Workers:  hashWorkers(workers, cfg.Hashing.Workers),
		Logger:   logger,
	})
	if err := runCtx.Err(); err != nil {
		return report.Report{}, nil, false, err
	}

	rep := report.Build(c)
	rep.RunID = runID
	return rep, c, false, nil
}

// hashWorkers picks the flag value when set, then the config value; zero
// means one worker per CPU.
func hashWorkers(flagValue, configValue int) int {
	n := configValue
	if flagValue >= 0 {
		n = flagValue
	}
	if n == 0 {
		n = runtime.NumCPU()
	}
	return n
}

func exportMissing(w io.Writer, c *classify.Classification, path string) error {
	entries := c.MissingEntries()
	if len(entries) == 0 {
		fmt.Fprintln(w, "Everyone has submitted; no missing list written.")
		return nil
	}
	if err := c.Roster.WriteEntries(path, entries); err != nil {
		return fmt.Errorf("export missing list: %w", err)
	}
	fmt.Fprintf(w, "Wrote %d missing student(s) to %s\n", len(entries), path)
	return nil
}
