// Package sink writes batch milestone rows to files.
package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/janpfeifer/GoShuffle/internal/config"
)

// ErrResource is returned when the output directory or file can't be created or written.
var ErrResource = errors.New("output resource error")

// Row is one milestone of a batch run.
type Row struct {
	DecksProcessed     int
	MaxSimilarityScore int
}

// Sink receives rows in order as the batch run advances.
type Sink interface {
	// WriteRow persists the row before returning.
	WriteRow(row Row) error
	// Close releases the underlying file.
	Close() error
	// Path of the output file.
	Path() string
}

// TimestampFormat is used to name output files.
const TimestampFormat = "2006-01-02_15-04-05"

// maxNameAttempts bounds the suffixes tried by createExclusive.
const maxNameAttempts = 1000

// Open creates the output directory if needed and a new sink of the given kind in it,
// named after now. Existing files are never overwritten: if the name is taken, a
// "_1", "_2", ... suffix is added.
func Open(kind, dir string, now time.Time) (Sink, error) {
	var ext string
	switch kind {
	case config.SinkCSV:
		ext = ".csv"
	case config.SinkSQLite:
		ext = ".db"
	default:
		return nil, fmt.Errorf("%w: unknown sink %q", config.ErrInvalidConfig, kind)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory %q: %w", ErrResource, dir, err)
	}
	f, err := createExclusive(filepath.Join(dir, now.Format(TimestampFormat)), ext)
	if err != nil {
		return nil, err
	}
	if kind == config.SinkCSV {
		return newCSV(f)
	}
	// The empty file reserves the name, SQLite initializes it as a new database.
	path := f.Name()
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing %q: %w", ErrResource, path, err)
	}
	return NewSQLite(path)
}

// createExclusive creates base+ext, or the first free base_<i>+ext, failing if the file
// already exists rather than truncating it.
func createExclusive(base, ext string) (*os.File, error) {
	path := base + ext
	for i := 1; ; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) || i >= maxNameAttempts {
			return nil, fmt.Errorf("%w: creating %q: %w", ErrResource, path, err)
		}
		path = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}
