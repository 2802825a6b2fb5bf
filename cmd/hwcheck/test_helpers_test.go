package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hwcheck/internal/config"
	"hwcheck/internal/testsupport"
)

// submittedAt is the arrival time used for the standard homework batch.
var submittedAt = time.Date(2024, time.March, 4, 20, 0, 0, 0, time.UTC)

type cliTestEnv struct {
	cfg         *config.Config
	configPath  string
	baseDir     string
	rosterPath  string
	homeworkDir string
}

// setupCLITestEnv writes a config, a three-student roster, and a homework
// directory with one submitter, one repeat submitter, and two unknown files.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	rosterPath := testsupport.WriteRosterCSV(t, base,
		[]string{"序号", "学号", "姓名"},
		[]string{"1", "201912345", "Alice"},
		[]string{"2", "987654321", "Bob"},
		[]string{"3", "555555555", "Carol"},
	)

	homework := filepath.Join(base, "homework")
	testsupport.WriteSubmission(t, homework, "201912345report2020.pdf", "alpha", submittedAt)
	testsupport.WriteSubmission(t, homework, "987654321_v1.py", "same", submittedAt)
	testsupport.WriteSubmission(t, homework, "987654321_v2.py", "beta", submittedAt.Add(2*time.Hour))
	testsupport.WriteSubmission(t, homework, "randomfile.txt", "same", submittedAt)
	testsupport.WriteSubmission(t, homework, "111111111_hw.py", "gamma", submittedAt)

	return &cliTestEnv{
		cfg:         cfg,
		configPath:  configPath,
		baseDir:     base,
		rosterPath:  rosterPath,
		homeworkDir: homework,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
