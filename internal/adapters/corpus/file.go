// Package corpus provides dataset source adapters implementing
// ports.CorpusSource.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

// FileSource reads a list of {question, answer} records from a JSON or
// YAML file. Records are decoded one by one so a single malformed record
// is rejected without losing the rest.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed corpus source.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = "qa_dataset.json"
	}
	return &FileSource{path: path}
}

// Path returns the dataset file path.
func (s *FileSource) Path() string {
	return s.path
}

// Describe returns the file path.
func (s *FileSource) Describe() string {
	return s.path
}

// SupportedExtensions returns the file extensions this source can decode.
func (s *FileSource) SupportedExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// Load reads and validates the dataset file.
func (s *FileSource) Load(ctx context.Context) (*entities.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ports.ErrDatasetUnavailable, s.path, err)
	}

	ds := &entities.Dataset{Source: s.path}
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".json":
		err = decodeJSON(data, ds)
	case ".yaml", ".yml":
		err = decodeYAML(data, ds)
	default:
		err = fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrDatasetUnavailable, s.path, err)
	}
	return ds, nil
}

func decodeJSON(data []byte, ds *entities.Dataset) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	for i, raw := range elems {
		var rec entities.RawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			ds.Reject(i, fmt.Errorf("decoding record: %w", err))
			continue
		}
		ds.Add(i, rec)
	}
	return nil
}

func decodeYAML(data []byte, ds *entities.Dataset) error {
	var elems []yaml.Node
	if err := yaml.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("decoding yaml: %w", err)
	}
	for i := range elems {
		var rec entities.RawRecord
		if err := elems[i].Decode(&rec); err != nil {
			ds.Reject(i, fmt.Errorf("decoding record: %w", err))
			continue
		}
		ds.Add(i, rec)
	}
	return nil
}
