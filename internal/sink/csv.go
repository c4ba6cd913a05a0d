package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// CSVHeader is the first row of every CSV file.
var CSVHeader = []string{"decks_processed", "max_similarity_score"}

// CSV writes rows to a CSV file, flushing after each row.
type CSV struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

var _ Sink = (*CSV)(nil)

// NewCSV creates the file at path and writes the header. It fails with ErrResource
// if the file already exists.
func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %q: %w", ErrResource, path, err)
	}
	return newCSV(f)
}

// newCSV takes ownership of the newly created f and writes the header.
func newCSV(f *os.File) (*CSV, error) {
	s := &CSV{path: f.Name(), file: f, writer: csv.NewWriter(f)}
	if err := s.write(CSVHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *CSV) write(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrResource, s.path, err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrResource, s.path, err)
	}
	return nil
}

// WriteRow implements Sink.
func (s *CSV) WriteRow(row Row) error {
	return s.write([]string{
		strconv.Itoa(row.DecksProcessed),
		strconv.Itoa(row.MaxSimilarityScore),
	})
}

// Close implements Sink.
func (s *CSV) Close() error {
	s.writer.Flush()
	flushErr := s.writer.Error()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrResource, s.path, err)
	}
	if flushErr != nil {
		return fmt.Errorf("%w: flushing %q: %w", ErrResource, s.path, flushErr)
	}
	return nil
}

// Path implements Sink.
func (s *CSV) Path() string {
	return s.path
}
