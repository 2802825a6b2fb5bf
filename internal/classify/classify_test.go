package classify_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"hwcheck/internal/classify"
	"hwcheck/internal/digest"
	"hwcheck/internal/logging"
	"hwcheck/internal/roster"
	"hwcheck/internal/submission"
	"hwcheck/internal/testsupport"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func buffer(name, content string) submission.Record {
	return submission.NewBuffer(name, []byte(content), time.Time{})
}

func timed(name, content string, offset time.Duration) submission.Record {
	return submission.NewBuffer(name, []byte(content), base.Add(offset))
}

func fileNames(subs []classify.Submission) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Name)
	}
	return out
}

func groupNames(c *classify.Classification) map[string][]string {
	out := make(map[string][]string, len(c.Groups))
	for id, subs := range c.Groups {
		out[id] = fileNames(subs)
	}
	return out
}

func sampleRoster() *roster.Roster {
	return roster.New(map[string]string{"123456789": "Alice", "987654321": "Bob"})
}

func TestClassifyScenario(t *testing.T) {
	files := []submission.Record{
		buffer("123456789_hw.py", "A"),
		buffer("987654321_v1.py", "B"),
		buffer("987654321_v2.py", "B"),
		buffer("randomfile.txt", "C"),
	}
	c := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{})

	wantGroups := map[string][]string{
		"123456789": {"123456789_hw.py"},
		"987654321": {"987654321_v1.py", "987654321_v2.py"},
	}
	if diff := cmp.Diff(wantGroups, groupNames(c)); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"randomfile.txt"}, fileNames(c.Unknown)); diff != "" {
		t.Fatalf("unknown mismatch (-want +got):\n%s", diff)
	}

	var h digest.Hasher
	if diff := cmp.Diff([]string{"987654321_v1.py", "987654321_v2.py"}, fileNames(c.Digests[h.Sum([]byte("B"))])); diff != "" {
		t.Fatalf("digest group mismatch (-want +got):\n%s", diff)
	}
	if len(c.Missing()) != 0 {
		t.Fatalf("expected nobody missing, got %v", c.Missing())
	}
	dups := c.DuplicateSubmitters()
	if len(dups) != 1 || len(dups["987654321"]) != 2 {
		t.Fatalf("unexpected duplicate submitters %v", dups)
	}
	exact := c.ExactDuplicates()
	if len(exact) != 1 || exact[0].Digest != h.Sum([]byte("B")) {
		t.Fatalf("unexpected exact duplicates %+v", exact)
	}
	if c.CompletionRate() != 1 {
		t.Fatalf("completion rate = %v", c.CompletionRate())
	}
	if c.Algorithm != digest.AlgorithmSHA256 {
		t.Fatalf("algorithm = %q", c.Algorithm)
	}
}

func TestClassifyEmptyRoster(t *testing.T) {
	files := []submission.Record{buffer("123456789_hw.py", "A"), buffer("x.txt", "A")}
	c := classify.Classify(context.Background(), roster.New(nil), files, classify.Options{})

	if c.CompletionRate() != 0 {
		t.Fatalf("completion rate = %v", c.CompletionRate())
	}
	if len(c.Unknown) != 2 || len(c.Groups) != 0 {
		t.Fatalf("expected every file unknown, got groups=%v unknown=%v", c.Groups, fileNames(c.Unknown))
	}
	if len(c.ExactDuplicates()) != 1 {
		t.Fatal("unknown files should still take part in duplicate detection")
	}
}

func TestClassifyNilRosterAndEmptyBatch(t *testing.T) {
	c := classify.Classify(context.Background(), nil, nil, classify.Options{})
	if c.CompletionRate() != 0 || len(c.Missing()) != 0 || len(c.Files) != 0 {
		t.Fatalf("expected empty classification, got %+v", c)
	}
	if len(c.MissingEntries()) != 0 {
		t.Fatal("expected no missing entries")
	}

	c = classify.Classify(context.Background(), sampleRoster(), nil, classify.Options{})
	if diff := cmp.Diff([]string{"123456789", "987654321"}, c.Missing()); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	want := []roster.Entry{{StudentID: "123456789", Name: "Alice"}, {StudentID: "987654321", Name: "Bob"}}
	if diff := cmp.Diff(want, c.MissingEntries()); diff != "" {
		t.Fatalf("missing entries mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyIsAPartition(t *testing.T) {
	r := roster.New(map[string]string{"111111111": "a", "222222222": "b", "333333333": "c"})
	files := []submission.Record{
		buffer("111111111.py", "1"),
		buffer("999999999.py", "2"),
		buffer("no-id.py", "3"),
		buffer("222222222-a.py", "4"),
		buffer("222222222-b.py", "4"),
		buffer("20191234.py", "5"),
	}
	c := classify.Classify(context.Background(), r, files, classify.Options{})

	seen := make(map[int]int)
	for _, subs := range c.Groups {
		for _, s := range subs {
			seen[s.Index]++
		}
	}
	for _, s := range c.Unknown {
		seen[s.Index]++
	}
	for i := range files {
		if seen[i] != 1 {
			t.Fatalf("file %d appears %d times across groups and unknown", i, seen[i])
		}
	}
	if len(c.Missing())+len(c.Groups) != r.Len() {
		t.Fatalf("missing (%d) + submitted (%d) != roster (%d)", len(c.Missing()), len(c.Groups), r.Len())
	}
	if diff := cmp.Diff([]string{"333333333"}, c.Missing()); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"111111111", "222222222"}, c.SubmittedIDs()); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
}

func TestDigestGroupingIsContentDetermined(t *testing.T) {
	forward := []submission.Record{
		buffer("123456789_a.py", "same"),
		buffer("unknown.py", "other"),
		buffer("987654321_b.py", "same"),
	}
	reversed := []submission.Record{forward[2], forward[1], forward[0]}

	for _, files := range [][]submission.Record{forward, reversed} {
		c := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{})
		if len(c.Digests) != 2 {
			t.Fatalf("expected two distinct digests, got %d", len(c.Digests))
		}
		exact := c.ExactDuplicates()
		if len(exact) != 1 || len(exact[0].Files) != 2 {
			t.Fatalf("expected one shared group, got %+v", exact)
		}
	}
}

func TestExactDuplicatesOrderedByFirstAppearance(t *testing.T) {
	files := []submission.Record{
		buffer("a.py", "x"),
		buffer("b.py", "y"),
		buffer("c.py", "y"),
		buffer("d.py", "x"),
		buffer("e.py", "z"),
	}
	c := classify.Classify(context.Background(), roster.New(nil), files, classify.Options{})
	exact := c.ExactDuplicates()
	if len(exact) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(exact))
	}
	if diff := cmp.Diff([]string{"a.py", "d.py"}, fileNames(exact[0].Files)); diff != "" {
		t.Fatalf("first group mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b.py", "c.py"}, fileNames(exact[1].Files)); diff != "" {
		t.Fatalf("second group mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i, content := range []string{"a", "b", "a", "c"} {
		testsupport.WriteSubmission(t, dir, fmt.Sprintf("%d_12345678%d.py", i, i), content, base.Add(time.Duration(i)*time.Minute))
	}
	files, err := submission.ScanDirectory(dir, submission.Options{})
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	r := roster.New(map[string]string{"123456780": "a", "123456781": "b", "123456782": "c"})
	deadline := base.Add(90 * time.Second)
	opts := classify.Options{Deadline: &deadline}

	first := classify.Classify(context.Background(), r, files, opts)
	second := classify.Classify(context.Background(), r, files, opts)
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(roster.Roster{})); diff != "" {
		t.Fatalf("classification changed between runs (-first +second):\n%s", diff)
	}
}

func TestParallelHashingPreservesInputOrder(t *testing.T) {
	files := make([]submission.Record, 0, 64)
	for i := 0; i < 64; i++ {
		files = append(files, buffer(fmt.Sprintf("123456789_v%02d.py", i), fmt.Sprintf("content-%d", i%3)))
	}
	sequential := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{Workers: 1})
	parallel := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{Workers: 8})

	if diff := cmp.Diff(sequential, parallel, cmp.AllowUnexported(roster.Roster{})); diff != "" {
		t.Fatalf("parallel hashing changed the result (-sequential +parallel):\n%s", diff)
	}
	group := parallel.Groups["123456789"]
	for i, s := range group {
		if s.Index != i {
			t.Fatalf("group position %d holds input index %d", i, s.Index)
		}
	}
}

type failingSource struct{}

func (failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("permission denied") }
func (failingSource) Size() int64 { return 42 }
func (failingSource) ObservedTime() (time.Time, bool) { return time.Time{}, false }

func TestUnreadableFileKeepsItsBucket(t *testing.T) {
	files := []submission.Record{
		{Name: "123456789_locked.py", Source: failingSource{}},
		{Name: "orphan.py"},
		buffer("987654321.py", "ok"),
	}
	c := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{Workers: 4})

	locked := c.Groups["123456789"]
	if len(locked) != 1 || locked[0].DigestAvailable() || locked[0].DigestError == "" {
		t.Fatalf("expected locked file in its group without digest, got %+v", locked)
	}
	if locked[0].Size != 42 {
		t.Fatalf("expected declared size to survive, got %d", locked[0].Size)
	}
	if len(c.Unknown) != 1 || c.Unknown[0].DigestAvailable() {
		t.Fatalf("expected orphan in unknown without digest, got %+v", c.Unknown)
	}
	if len(c.Digests) != 1 {
		t.Fatalf("only readable files should be grouped, got %d digests", len(c.Digests))
	}
}

func TestCanceledContextDegradesDigests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := classify.Classify(ctx, sampleRoster(), []submission.Record{buffer("123456789.py", "a")}, classify.Options{})
	if len(c.Groups["123456789"]) != 1 {
		t.Fatal("file should still be classified")
	}
	if len(c.Digests) != 0 {
		t.Fatal("no digest should be recorded after cancellation")
	}
}

func TestLateness(t *testing.T) {
	deadline := base
	files := []submission.Record{
		timed("123456789_early.py", "a", -time.Hour),
		timed("123456789_exact.py", "b", 0),
		timed("987654321_late.py", "c", time.Second),
		buffer("987654321_untimed.py", "d"),
	}
	c := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{Deadline: &deadline})

	want := []bool{false, false, true, false}
	for i, s := range c.Files {
		if s.Late != want[i] {
			t.Fatalf("%s late = %v, want %v", s.Name, s.Late, want[i])
		}
	}
	if c.LateCount() != 1 {
		t.Fatalf("late count = %d", c.LateCount())
	}

	noDeadline := classify.Classify(context.Background(), sampleRoster(), files, classify.Options{})
	if noDeadline.LateCount() != 0 {
		t.Fatal("lateness must not be computed without a deadline")
	}
}

func TestRepresentativePolicy(t *testing.T) {
	r := sampleRoster()

	allTimed := []submission.Record{
		timed("123456789_v1.py", "1", 2*time.Hour),
		timed("123456789_v2.py", "2", time.Hour),
	}
	c := classify.Classify(context.Background(), r, allTimed, classify.Options{})
	got, ok := c.Representative("123456789")
	if !ok || got.Name != "123456789_v1.py" {
		t.Fatalf("expected newest file by time, got %q", got.Name)
	}

	tied := []submission.Record{
		timed("123456789_v1.py", "1", time.Hour),
		timed("123456789_v2.py", "2", time.Hour),
	}
	c = classify.Classify(context.Background(), r, tied, classify.Options{})
	if got, _ := c.Representative("123456789"); got.Name != "123456789_v2.py" {
		t.Fatalf("expected later arrival to break ties, got %q", got.Name)
	}

	mixed := []submission.Record{
		timed("123456789_v1.py", "1", 2*time.Hour),
		buffer("123456789_v2.py", "2"),
		timed("123456789_v3.py", "3", time.Hour),
	}
	c = classify.Classify(context.Background(), r, mixed, classify.Options{})
	if got, _ := c.Representative("123456789"); got.Name != "123456789_v3.py" {
		t.Fatalf("expected last arrival when a timestamp is missing, got %q", got.Name)
	}

	if _, ok := c.Representative("987654321"); ok {
		t.Fatal("student without files has no representative")
	}
}

func TestMD5Hasher(t *testing.T) {
	h, err := digest.New(digest.AlgorithmMD5, 0)
	if err != nil {
		t.Fatalf("digest.New: %v", err)
	}
	c := classify.Classify(context.Background(), sampleRoster(), []submission.Record{buffer("a.py", "abc")}, classify.Options{Hasher: h})
	if c.Files[0].Digest != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("unexpected md5 digest %q", c.Files[0].Digest)
	}
	if c.Algorithm != digest.AlgorithmMD5 {
		t.Fatalf("algorithm = %q", c.Algorithm)
	}
}

func TestClassifyLogLinesCarryRunIDOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logging.WithRunID(context.Background(), "run-0001")

	files := []submission.Record{
		buffer("123456789_hw.py", "A"),
		{Name: "987654321_locked.py", Source: failingSource{}},
	}
	classify.Classify(ctx, sampleRoster(), files, classify.Options{Logger: logger})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected classify log lines, got %q", buf.String())
	}
	sawWarn := false
	for _, line := range lines {
		if got := strings.Count(line, `"`+logging.FieldRunID+`":`); got != 1 {
			t.Fatalf("expected run id once, got %d in %s", got, line)
		}
		if got := strings.Count(line, `"`+logging.FieldComponent+`":`); got != 1 {
			t.Fatalf("expected component once, got %d in %s", got, line)
		}
		if strings.Contains(line, "digest unavailable") {
			sawWarn = true
		}
	}
	if !sawWarn {
		t.Fatalf("expected a warning for the unreadable file in %q", buf.String())
	}
}
