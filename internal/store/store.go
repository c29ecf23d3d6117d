// Package store loads and saves the macro file in a gocloud blob bucket.
// A plain directory path opens a file bucket; any other location is
// treated as a bucket URL (file:///path, mem://).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/mj1618/keymacro/internal/model"
)

// Key is the object holding every macro record.
const Key = "keyMacros.json"

// ErrNotFound is returned by Load when the bucket has no macro file yet.
var ErrNotFound = errors.New("store: macro file not found")

// Store reads and writes the macro file.
type Store struct {
	bucket   *blob.Bucket
	location string
}

// Open opens the bucket at location.
func Open(ctx context.Context, location string) (*Store, error) {
	if location == "" {
		return nil, fmt.Errorf("store location is empty")
	}
	var (
		bucket *blob.Bucket
		err    error
	)
	if strings.Contains(location, "://") {
		bucket, err = blob.OpenBucket(ctx, location)
	} else {
		if err := os.MkdirAll(location, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		bucket, err = fileblob.OpenBucket(location, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", location, err)
	}
	return &Store{bucket: bucket, location: location}, nil
}

// Location returns the location the store was opened with.
func (s *Store) Location() string { return s.location }

// Load reads all records keyed by ID. Records missing an ID take their key.
func (s *Store) Load(ctx context.Context) (map[string]model.MacroRecord, error) {
	data, err := s.bucket.ReadAll(ctx, Key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", Key, err)
	}
	records := map[string]model.MacroRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Key, err)
	}
	for id, rec := range records {
		if rec.ID == "" {
			rec.ID = id
			records[id] = rec
		}
	}
	return records, nil
}

// Save replaces the macro file with records.
func (s *Store) Save(ctx context.Context, records map[string]model.MacroRecord) error {
	out := make(map[string]model.MacroRecord, len(records))
	for id, rec := range records {
		if rec.Record == nil {
			rec.Record = model.NewEventLog()
		}
		out[id] = rec
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", Key, err)
	}
	if err := s.bucket.WriteAll(ctx, Key, data, &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("write %s: %w", Key, err)
	}
	return nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}
