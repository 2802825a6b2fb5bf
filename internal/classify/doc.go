// Package classify matches a batch of submission files against a roster.
//
// Classify is a pure function of the roster, the files, and the options: it
// returns a Classification holding per-student groups, unknown files, and
// content fingerprint groups, all in input order. Derived views such as the
// missing list, duplicate submitters, and exact duplicates are computed on
// demand. Hashing may fan out across workers but results are always folded
// back in input order, so first and last arrival stay deterministic.
package classify
