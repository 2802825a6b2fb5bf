// Package roster loads class rosters from CSV or Excel files and exports
// student lists back out in the same column convention.
//
// Column discovery is heuristic: a header marker (学号 by default) wins, then
// the first column whose leading values contain a nine-digit student ID. The
// name column is always the one to the right of the ID column. Parse works on
// an in-memory Table so the heuristics can be tested without files.
package roster
