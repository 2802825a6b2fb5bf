package classify

import (
	"context"
	"log/slog"
	"time"

	"hwcheck/internal/digest"
	"hwcheck/internal/logging"
	"hwcheck/internal/roster"
	"hwcheck/internal/studentid"
	"hwcheck/internal/submission"
)

// Submission is one classified file. It is a value snapshot: nothing in a
// Classification refers back to the file content.
type Submission struct {
	// Index is the file's position in the input batch.
	Index     int        `json:"index" yaml:"index"`
	Name      string     `json:"name" yaml:"name"`
	Size      int64      `json:"size" yaml:"size"`
	Observed  *time.Time `json:"observed,omitempty" yaml:"observed,omitempty"`
	StudentID string     `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	// Digest is empty when the content could not be read.
	Digest      string `json:"digest,omitempty" yaml:"digest,omitempty"`
	DigestError string `json:"digest_error,omitempty" yaml:"digest_error,omitempty"`
	Late        bool   `json:"late" yaml:"late"`
}

// DigestAvailable reports whether the file content was fingerprinted.
func (s Submission) DigestAvailable() bool {
	return s.Digest != ""
}

// Options tunes a classification run.
type Options struct {
	// Deadline enables lateness flags when set.
	Deadline *time.Time
	// Hasher fingerprints content; nil uses SHA-256.
	Hasher *digest.Hasher
	// Workers bounds parallel hashing. Values below 2 hash sequentially.
	Workers int
	Logger  *slog.Logger
}

// Classification is the immutable result of matching a batch against a roster.
type Classification struct {
	Roster *roster.Roster
	// Files holds every input file in input order.
	Files []Submission
	// Groups maps a roster ID to its files in arrival order. Students with no
	// files have no key.
	Groups map[string][]Submission
	// Unknown holds files with no ID or an ID outside the roster.
	Unknown []Submission
	// Digests maps a content fingerprint to every file that produced it,
	// whether matched or unknown.
	Digests   map[string][]Submission
	Deadline  *time.Time
	Algorithm string
}

// Classify partitions files into per-student groups and unknown files, and
// groups every readable file by content fingerprint. It never fails: an
// unreadable file keeps its place in the partition with no digest.
func Classify(ctx context.Context, r *roster.Roster, files []submission.Record, opts Options) *Classification {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "classify"))
	hasher := opts.Hasher
	if hasher == nil {
		hasher = &digest.Hasher{}
	}

	hashes := hashAll(ctx, files, hasher, opts.Workers)

	c := &Classification{
		Roster:    r,
		Files:     make([]Submission, 0, len(files)),
		Groups:    make(map[string][]Submission),
		Unknown:   make([]Submission, 0),
		Digests:   make(map[string][]Submission),
		Deadline:  copyTime(opts.Deadline),
		Algorithm: hasher.Algorithm(),
	}

	for i, file := range files {
		sub := Submission{Index: i, Name: file.Name, Size: file.Size()}
		if ts, ok := file.ObservedTime(); ok {
			sub.Observed = copyTime(&ts)
		}
		if c.Deadline != nil && sub.Observed != nil {
			sub.Late = sub.Observed.After(*c.Deadline)
		}
		if hashes[i].err != nil {
			sub.DigestError = hashes[i].err.Error()
			logging.WarnWithContext(logger, "digest unavailable", "digest_unavailable",
				logging.String(logging.FieldFile, file.Name),
				logging.Error(hashes[i].err),
				logging.String(logging.FieldImpact, "file excluded from duplicate content detection"),
			)
		} else {
			sub.Digest = hashes[i].sum
		}

		if id, ok := studentid.Extract(file.Name); ok && r.Contains(id) {
			sub.StudentID = id
			c.Groups[id] = append(c.Groups[id], sub)
		} else {
			c.Unknown = append(c.Unknown, sub)
		}
		if sub.DigestAvailable() {
			c.Digests[sub.Digest] = append(c.Digests[sub.Digest], sub)
		}
		c.Files = append(c.Files, sub)

		logger.Debug("file classified",
			logging.String(logging.FieldFile, sub.Name),
			logging.String(logging.FieldStudentID, sub.StudentID),
			logging.Bool("late", sub.Late),
		)
	}

	logger.Info("classification complete",
		logging.Int("files", len(c.Files)),
		logging.Int("submitted", len(c.Groups)),
		logging.Int("roster", r.Len()),
		logging.Int("unknown", len(c.Unknown)),
	)
	return c
}

func copyTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}
