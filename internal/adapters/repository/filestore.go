package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/pkg/logger"
	"github.com/okian/fpl-tracker/pkg/metrics"
)

const defaultFileMode os.FileMode = 0o644

// FileStore keeps TeamsData in a single JSON file:
//
//	{ teamId: { seasonLabel: { "Total Points": int, "Rank": int } } }
//
// Writes truncate and rewrite the whole file. There is no locking; one
// process owns the file.
type FileStore struct {
	path   string
	mode   os.FileMode
	indent string
	logger logger.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		mode:   defaultFileMode,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing file yields an empty mapping;
// a file that is not valid JSON returns ErrCorruptFile.
func (s *FileStore) Load(ctx context.Context) (model.TeamsData, error) {
	start := time.Now()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.observe(ctx, metrics.StoreLoad, metrics.StoreMissing, start)
		return model.TeamsData{}, nil
	}
	if err != nil {
		s.observe(ctx, metrics.StoreLoad, metrics.StoreError, start, logger.Error(err))
		return nil, fmt.Errorf("%w %s: %w", ErrReadFile, s.path, err)
	}

	data := model.TeamsData{}
	if err := json.Unmarshal(raw, &data); err != nil {
		s.observe(ctx, metrics.StoreLoad, metrics.StoreError, start, logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFile, s.path, err)
	}
	// "null" decodes to a nil map.
	if data == nil {
		data = model.TeamsData{}
	}

	s.observe(ctx, metrics.StoreLoad, metrics.StoreOK, start, logger.Int("teams", len(data)))
	return data, nil
}

// Save serializes data and overwrites the backing file in full.
func (s *FileStore) Save(ctx context.Context, data model.TeamsData) error {
	start := time.Now()
	if data == nil {
		data = model.TeamsData{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", s.indent)
	if err := enc.Encode(data); err != nil {
		s.observe(ctx, metrics.StoreSave, metrics.StoreError, start, logger.Error(err))
		return fmt.Errorf("%w %s: encode: %w", ErrWriteFile, s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.observe(ctx, metrics.StoreSave, metrics.StoreError, start, logger.Error(err))
			return fmt.Errorf("%w %s: %w", ErrWriteFile, s.path, err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), s.mode); err != nil {
		s.observe(ctx, metrics.StoreSave, metrics.StoreError, start, logger.Error(err))
		return fmt.Errorf("%w %s: %w", ErrWriteFile, s.path, err)
	}

	s.observe(ctx, metrics.StoreSave, metrics.StoreOK, start, logger.Int("teams", len(data)))
	return nil
}

func (s *FileStore) observe(ctx context.Context, op, result string, start time.Time, fields ...logger.Field) {
	elapsed := time.Since(start)
	metrics.RecordStoreOperation(op, result, float64(elapsed.Microseconds())/1000)

	fields = append(fields,
		logger.String("op", op),
		logger.String("result", result),
		logger.String("path", s.path),
		logger.Duration("elapsed", elapsed),
	)
	if result == metrics.StoreError {
		s.logger.Error(ctx, "team data file operation failed", fields...)
		return
	}
	s.logger.Debug(ctx, "team data file operation", fields...)
}
