package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
)

const recordExt = ".json"

// JSONRecordRepo implements RecordRepo as one pretty-printed JSON document
// per record in a flat directory.
type JSONRecordRepo struct {
	dir string
}

// NewJSONRecordRepo creates a JSONRecordRepo rooted at dir. The directory is
// created on first save.
func NewJSONRecordRepo(dir string) *JSONRecordRepo {
	return &JSONRecordRepo{dir: dir}
}

// Dir returns the storage directory.
func (r *JSONRecordRepo) Dir() string { return r.dir }

// Save writes rec under name, appending ".json" when absent, and returns the
// file name used. An existing file is overwritten.
func (r *JSONRecordRepo) Save(_ context.Context, rec *domain.PatientRecord, name string) (string, error) {
	filename, err := recordFilename(name)
	if err != nil {
		return "", err
	}

	data, err := domain.EncodeRecord(rec, "  ")
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating records directory: %w", err)
	}
	path := filepath.Join(r.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, nil
}

// Load reads the record stored under name.
func (r *JSONRecordRepo) Load(_ context.Context, name string) (*domain.PatientRecord, error) {
	if strings.TrimSpace(name) == "" || name == domain.NoSavedFilesPlaceholder {
		return nil, domain.ErrMissingFilename
	}
	filename, err := recordFilename(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(r.dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, filename)
		}
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var rec domain.PatientRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	return &rec, nil
}

// List returns the saved file names in ascending order. A missing directory
// yields an empty list.
func (r *JSONRecordRepo) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing records: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func recordFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrMissingFilename
	}
	if hasPathSeparator(name) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFilename, name)
	}
	if !strings.HasSuffix(name, recordExt) {
		name += recordExt
	}
	return name, nil
}
