// Package main hosts the hwcheck CLI entrypoint and command graph.
//
// The Cobra-based command tree loads a class roster and a batch of homework
// files, runs the classification engine, and renders the result as terminal
// tables, JSON, or YAML. It centralizes configuration resolution and logger
// setup so subcommands can focus on presentation.
//
// Keep this package lean: matching rules live in internal/classify and the
// row model in internal/report. Commands here only gather inputs and choose
// an output format.
package main
