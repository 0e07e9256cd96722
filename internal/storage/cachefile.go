package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"profitScope/internal/model"
)

var (
	// ErrSnapshotNotFound reports a missing snapshot file.
	ErrSnapshotNotFound = errors.New("pool snapshot not found")
	// ErrSnapshotMalformed reports a snapshot file that does not parse
	// as a JSON array.
	ErrSnapshotMalformed = errors.New("pool snapshot malformed")
)

// CacheFile reads and writes the JSON pool snapshot on disk.
type CacheFile struct {
	path string
}

func NewCacheFile(path string) *CacheFile {
	return &CacheFile{path: path}
}

// Path returns the snapshot location.
func (c *CacheFile) Path() string { return c.path }

// LoadPools parses the snapshot document. A missing file maps to
// ErrSnapshotNotFound and invalid JSON to ErrSnapshotMalformed; the
// entries themselves are not validated here.
func (c *CacheFile) LoadPools(ctx context.Context) ([]model.PoolRecord, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, c.path)
		}
		return nil, fmt.Errorf("read pool snapshot %s: %w", c.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s: not a JSON array", ErrSnapshotMalformed, c.path)
	}

	var records []model.PoolRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSnapshotMalformed, c.path, err)
	}
	return records, nil
}

// WritePools replaces the snapshot atomically, creating the parent
// directory when it does not exist yet.
func (c *CacheFile) WritePools(records []model.PoolRecord) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	if records == nil {
		records = []model.PoolRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pool snapshot: %w", err)
	}
	data = append(data, '\n')

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write pool snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace pool snapshot: %w", err)
	}
	return nil
}
