package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hwcheck/internal/config"
	"hwcheck/internal/faults"
	"hwcheck/internal/roster"
	"hwcheck/internal/submission"
)

// inputFlags are shared by every command that classifies a batch.
type inputFlags struct {
	rosterPath string
	dir        string
	deadline   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.rosterPath, "roster", "r", "", "Class roster (.csv or .xlsx)")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "Directory of submitted files (not recursive)")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Submission deadline, e.g. \"2024-03-04 23:59\" or RFC 3339")
}

type runInputs struct {
	roster   *roster.Roster
	files    []submission.Record
	deadline *time.Time
}

func (c *commandContext) loadInputs(cfg *config.Config, flags inputFlags, args []string) (*runInputs, error) {
	dir := strings.TrimSpace(flags.dir)
	if dir != "" && len(args) > 0 {
		return nil, faults.Wrap(faults.ErrValidation, "cli", "inputs", "use either --dir or file arguments, not both", nil)
	}

	rosterPath := strings.TrimSpace(flags.rosterPath)
	if rosterPath == "" {
		return nil, faults.Wrap(faults.ErrMissingInput, "cli", "inputs", "roster not supplied", nil)
	}
	if dir == "" && len(args) == 0 {
		return nil, faults.Wrap(faults.ErrMissingInput, "cli", "inputs", "submissions not supplied", nil)
	}

	inputs := &runInputs{}
	r, err := roster.Load(rosterPath, rosterOptions(cfg))
	if err != nil {
		if errors.Is(err, faults.ErrMissingInput) {
			return nil, err
		}
		return nil, fmt.Errorf("load roster: %w", err)
	}
	inputs.roster = r

	opts := submission.Options{
		Extensions:    cfg.Submissions.Extensions,
		IncludeHidden: cfg.Submissions.IncludeHidden,
	}
	if dir != "" {
		inputs.files, err = submission.ScanDirectory(dir, opts)
	} else {
		inputs.files, err = submission.LoadUploads(args, opts, c.clock)
	}
	if err != nil {
		return nil, err
	}
	if len(inputs.files) == 0 {
		return nil, faults.Wrap(faults.ErrMissingInput, "submission", "load", "no submission files matched", nil)
	}

	// The deadline is only checked once both inputs are present, so a
	// missing input always reports as waiting.
	if value := strings.TrimSpace(flags.deadline); value != "" {
		deadline, err := cfg.ParseDeadline(value)
		if err != nil {
			return nil, faults.Wrap(faults.ErrValidation, "cli", "deadline", "invalid --deadline", err)
		}
		inputs.deadline = &deadline
	}
	return inputs, nil
}

func rosterOptions(cfg *config.Config) roster.Options {
	return roster.Options{
		IDHeaderMarker:  cfg.Roster.IDHeaderMarker,
		NameHeader:      cfg.Roster.NameHeader,
		NamePlaceholder: cfg.Roster.NamePlaceholder,
		ScanRows:        cfg.Roster.ScanRows,
		Sheet:           cfg.Roster.Sheet,
	}
}

// waitingPrompt tells the user which input is still outstanding.
func waitingPrompt(flags inputFlags, args []string) string {
	switch {
	case strings.TrimSpace(flags.rosterPath) == "":
		return "Waiting for a roster: pass --roster with a .csv or .xlsx class list."
	case strings.TrimSpace(flags.dir) == "" && len(args) == 0:
		return "Waiting for submissions: pass --dir DIR or list the homework files as arguments."
	default:
		return "Waiting for submissions: no files matched the configured extensions."
	}
}
