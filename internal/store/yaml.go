package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLBackend stores sections as a YAML mapping:
//
//	svc1:
//	  dashboard: Hosts
//	  panelId: "1"
type YAMLBackend struct {
	path string
}

// NewYAMLBackend returns a backend for the YAML file at path.
func NewYAMLBackend(path string) *YAMLBackend {
	return &YAMLBackend{path: path}
}

func (b *YAMLBackend) Name() string { return "yaml" }

// Path returns the YAML file location.
func (b *YAMLBackend) Path() string { return b.path }

// Load parses the YAML file. A missing or empty file yields an empty set.
func (b *YAMLBackend) Load(ctx context.Context) (Sections, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Sections{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}

	sections := make(Sections, len(raw))
	for name, values := range raw {
		sections[name] = Section(values).Clone()
	}
	return sections, nil
}

// Persist rewrites the whole file.
func (b *YAMLBackend) Persist(ctx context.Context, sections Sections) error {
	raw := make(map[string]map[string]string, len(sections))
	for name, values := range sections {
		raw[name] = values
	}

	return writeFileAtomic(b.path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return err
		}
		return enc.Close()
	})
}

func (b *YAMLBackend) Close() error { return nil }
