// Package histfile implements the on-disk record store backing every
// history category. A history file is a back-to-back concatenation of
// self-describing binary records of a single type; there is no header,
// checksum, or version tag. Appends are tail-only and never touch existing
// bytes, so interleaved appends from racing writers stay decodable. The
// only full rewrite is WriteAll, used by trimming and whole-list updates.
package histfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/relicdev/relic/internal/codec"
)

// Codec describes how one record type is encoded. Append serializes a
// record onto dst and returns the extended slice; Decode consumes exactly
// one record from the reader.
type Codec[T any] struct {
	Append func(dst []byte, v T) []byte
	Decode func(r *codec.Reader) (T, error)
}

// Push appends a single encoded record to the file, creating it if needed.
// Existing content is never read or rewritten.
func Push[T any](c Codec[T], path string, v T) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("histfile: open %s: %w", path, err)
	}

	_, werr := f.Write(c.Append(nil, v))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("histfile: append to %s: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("histfile: close %s: %w", path, cerr)
	}
	return nil
}

// ReadAll decodes every record in the file in append order, oldest first.
// A missing file is an empty history, not an error. A file that cannot be
// decoded in full fails as a whole; no prefix is recovered.
func ReadAll[T any](c Codec[T], path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("histfile: read %s: %w", path, err)
	}

	r := codec.NewReader(data)
	var records []T
	for r.Len() > 0 {
		v, err := c.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("histfile: decode record %d in %s: %w", len(records), path, err)
		}
		records = append(records, v)
	}
	return records, nil
}

// WriteAll replaces the file's content with exactly the given records,
// encoded back to back in order.
func WriteAll[T any](c Codec[T], path string, records []T) error {
	var buf []byte
	for _, v := range records {
		buf = c.Append(buf, v)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("histfile: write %s: %w", path, err)
	}
	return nil
}

// Trim keeps only the newest max records, dropping the oldest. When the
// file already holds max or fewer records it is left untouched; only an
// actual trim rewrites the file.
func Trim[T any](c Codec[T], path string, max int) error {
	records, err := ReadAll(c, path)
	if err != nil {
		return err
	}
	if len(records) <= max {
		return nil
	}
	return WriteAll(c, path, records[len(records)-max:])
}
