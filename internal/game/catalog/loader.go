package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Decode parses one catalog file. The format is chosen by extension:
// .yaml and .yml are YAML, .toml is TOML. Unknown keys are rejected in both.
//
// Postcondition: returns a validated Document or an error naming path.
func Decode(path string, data []byte) (*Document, error) {
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("cannot parse file %q: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("cannot parse file %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("cannot parse file %q: unknown keys %v", path, undecoded)
		}
	default:
		return nil, fmt.Errorf("cannot parse file %q: unsupported extension", path)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content in %q: %w", path, err)
	}
	return &doc, nil
}

// Validate checks every definition in the document.
//
// Postcondition: returns nil iff every definition is non-nil and valid.
func (doc *Document) Validate() error {
	var errs []error
	check := func(kind string, i int, v interface{ Validate() error }, isNil bool) {
		if isNil {
			errs = append(errs, fmt.Errorf("%s[%d] is empty", kind, i))
			return
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, d := range doc.Weapons {
		check("weapons", i, d, d == nil)
	}
	for i, d := range doc.Armor {
		check("armor", i, d, d == nil)
	}
	for i, d := range doc.Ranged {
		check("ranged", i, d, d == nil)
	}
	for i, d := range doc.Spells {
		check("spells", i, d, d == nil)
	}
	for i, d := range doc.Skills {
		check("skills", i, d, d == nil)
	}
	return errors.Join(errs...)
}

// LoadFile reads and decodes a single catalog file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: cannot read file %q: %w", path, err)
	}
	doc, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	return doc, nil
}

// LoadDirectory reads every *.yaml, *.yml and *.toml file in dir into a new
// Registry. Subdirectories and other files are ignored.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns a Registry whose cross-references resolve, or the
// first encountered error.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDirectory: cannot read directory %q: %w", dir, err)
	}

	reg := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".toml":
		default:
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDirectory: %w", err)
		}
		if err := reg.Register(doc); err != nil {
			return nil, fmt.Errorf("LoadDirectory: %q: %w", path, err)
		}
	}
	if err := reg.Check(); err != nil {
		return nil, fmt.Errorf("LoadDirectory: %q: %w", dir, err)
	}
	return reg, nil
}
