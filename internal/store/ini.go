package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/ini.v1"
)

// ErrReservedSectionName is returned by the INI backend for a section named
// like the INI default section, which is written without a header.
var ErrReservedSectionName = fmt.Errorf("section name %q is reserved by the ini format", ini.DefaultSection)

// INIBackend stores each section as an [ini] section in a single file.
type INIBackend struct {
	path string
}

// NewINIBackend returns a backend for the INI file at path. The file is
// created on first Persist.
func NewINIBackend(path string) *INIBackend {
	return &INIBackend{path: path}
}

func (b *INIBackend) Name() string { return "ini" }

// Path returns the INI file location.
func (b *INIBackend) Path() string { return b.path }

// Load parses the INI file. A missing file yields an empty set.
func (b *INIBackend) Load(ctx context.Context) (Sections, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Sections{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}

	sections := Sections{}
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		sections[sec.Name()] = Section(sec.KeysHash())
	}
	return sections, nil
}

// Persist rewrites the whole file.
func (b *INIBackend) Persist(ctx context.Context, sections Sections) error {
	file := ini.Empty()
	for _, name := range sections.Names() {
		if name == ini.DefaultSection {
			return ErrReservedSectionName
		}
		sec, err := file.NewSection(name)
		if err != nil {
			return fmt.Errorf("invalid section name %q: %w", name, err)
		}
		values := sections[name]
		for _, key := range sortedKeys(values) {
			if _, err := sec.NewKey(key, values[key]); err != nil {
				return fmt.Errorf("invalid key %q in section %q: %w", key, name, err)
			}
		}
	}

	return writeFileAtomic(b.path, func(w io.Writer) error {
		_, err := file.WriteTo(w)
		return err
	})
}

func (b *INIBackend) Close() error { return nil }
