// Package config loads, normalizes, and validates hwcheck configuration data.
//
// It supplies repository defaults (the roster header marker, the placeholder
// name, hashing and deadline settings), expands user paths, reads TOML files,
// and honours the HWCHECK_LOG_LEVEL environment override. Commands obtain
// settings through this package so roster parsing, hashing, and rendering all
// see the same sanitized values.
package config
