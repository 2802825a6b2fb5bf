package submission

import (
	"bytes"
	"io"
	"os"
	"time"
)

// FileSource abstracts where submission content and its observed time come
// from. Buffer-backed sources model uploads; filesystem-backed sources model a
// local folder of submissions.
type FileSource interface {
	Open() (io.ReadCloser, error)
	Size() int64
	ObservedTime() (time.Time, bool)
}

// Record is one discovered or uploaded file.
type Record struct {
	Name   string
	Source FileSource
}

// Size returns the declared size of the record content.
func (r Record) Size() int64 {
	if r.Source == nil {
		return 0
	}
	return r.Source.Size()
}

// ObservedTime returns the resolved timestamp used for lateness checks.
func (r Record) ObservedTime() (time.Time, bool) {
	if r.Source == nil {
		return time.Time{}, false
	}
	return r.Source.ObservedTime()
}

type bufferSource struct {
	data     []byte
	observed time.Time
}

// NewBuffer returns an upload-style record. A zero observed time means the
// record has no timestamp.
func NewBuffer(name string, data []byte, observed time.Time) Record {
	return Record{Name: name, Source: &bufferSource{data: data, observed: observed}}
}

func (b *bufferSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (b *bufferSource) Size() int64 { return int64(len(b.data)) }

func (b *bufferSource) ObservedTime() (time.Time, bool) {
	return b.observed, !b.observed.IsZero()
}

type fileSource struct {
	path    string
	size    int64
	modTime time.Time
}

// NewFile returns a filesystem-backed record using the file's modification
// time as its observed time.
func NewFile(path string, info os.FileInfo) Record {
	return Record{
		Name:   info.Name(),
		Source: &fileSource{path: path, size: info.Size(), modTime: info.ModTime()},
	}
}

func (f *fileSource) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (f *fileSource) Size() int64 { return f.size }

func (f *fileSource) ObservedTime() (time.Time, bool) {
	return f.modTime, !f.modTime.IsZero()
}
