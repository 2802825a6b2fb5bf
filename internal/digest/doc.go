// Package digest fingerprints submission content so byte-identical files can
// be grouped across a whole class.
//
// In-memory buffers and streamed readers produce the same fingerprint for the
// same bytes. Read failures are tagged with faults.ErrFileRead so callers can
// mark the digest unavailable without aborting the batch.
package digest
