package classify

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"hwcheck/internal/digest"
	"hwcheck/internal/faults"
	"hwcheck/internal/submission"
)

type hashResult struct {
	sum string
	err error
}

// hashAll fingerprints every file. Each result lands in the slot matching its
// input index, so group construction afterwards sees input order no matter
// how the workers were scheduled.
func hashAll(ctx context.Context, files []submission.Record, hasher *digest.Hasher, workers int) []hashResult {
	results := make([]hashResult, len(files))
	if workers < 2 || len(files) < 2 {
		for i, file := range files {
			results[i] = hashOne(ctx, file, hasher)
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = hashOne(gctx, file, hasher)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func hashOne(ctx context.Context, file submission.Record, hasher *digest.Hasher) hashResult {
	if err := ctx.Err(); err != nil {
		return hashResult{err: faults.Wrap(faults.ErrFileRead, "classify", "hash", file.Name, err)}
	}
	if file.Source == nil {
		return hashResult{err: faults.Wrap(faults.ErrFileRead, "classify", "hash", file.Name, errors.New("no content source"))}
	}
	rc, err := file.Source.Open()
	if err != nil {
		return hashResult{err: faults.Wrap(faults.ErrFileRead, "classify", "open", file.Name, err)}
	}
	defer rc.Close()
	sum, err := hasher.SumReader(rc)
	if err != nil {
		return hashResult{err: err}
	}
	return hashResult{sum: sum}
}
