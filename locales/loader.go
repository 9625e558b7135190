// Package locales loads localization models from files named after their
// language code, e.g. en.json, ru.yaml or de.toml.
package locales

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/amarnathcjd/tghelper/telegram"
)

// Format is a localization file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format of a file by its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	case ".toml":
		return TOML, true
	}
	return "", false
}

// CodeOf returns the language code a file provides: its name without the
// extension.
func CodeOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Decode parses data as a model of type T.
func Decode[T any](format Format, data []byte) (T, error) {
	var model T
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, &model)
	case YAML:
		err = yaml.Unmarshal(data, &model)
	case TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&model)
	default:
		err = errors.Errorf("unsupported localization format %q", format)
	}
	return model, err
}

// LoadFile reads one localization file.
func LoadFile[T any](path string) (telegram.LocaleEntry[T], error) {
	format, ok := FormatOf(path)
	if !ok {
		return telegram.LocaleEntry[T]{}, errors.Errorf("%s: unsupported localization file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return telegram.LocaleEntry[T]{}, errors.Wrap(err, "reading localization file")
	}
	model, err := Decode[T](format, data)
	if err != nil {
		return telegram.LocaleEntry[T]{}, errors.Wrapf(err, "parsing %s", path)
	}
	return telegram.LocaleEntry[T]{Code: CodeOf(path), Model: model}, nil
}

// Dir provides every localization file below a directory.
type Dir[T any] struct {
	Path string
	// Check required keys of each model with Validate
	Strict bool
}

func NewDir[T any](path string, strict bool) *Dir[T] {
	return &Dir[T]{Path: path, Strict: strict}
}

// Locales walks the directory and decodes every supported file. Entries are
// sorted by code; two files providing the same code are an error.
func (d *Dir[T]) Locales() ([]telegram.LocaleEntry[T], error) {
	var entries []telegram.LocaleEntry[T]
	seen := make(map[string]string)

	err := filepath.WalkDir(d.Path, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		if _, ok := FormatOf(path); !ok {
			return nil
		}

		entry, err := LoadFile[T](path)
		if err != nil {
			return err
		}
		if prev, ok := seen[entry.Code]; ok {
			return errors.Errorf("%s and %s both provide language code %q", prev, path, entry.Code)
		}
		seen[entry.Code] = path

		if d.Strict {
			if err := Validate(entry.Model); err != nil {
				return errors.Wrapf(err, "validating %s", path)
			}
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "loading localizations from %s", d.Path)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries, nil
}

// Strings is a flat key/value localization model.
type Strings map[string]string

// Get returns the value for key, or the key itself when it is missing.
func (s Strings) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

// Text returns a selector for key, for use with AddTextHandler.
func Text(key string) telegram.TextSelector[Strings] {
	return func(s Strings) string {
		return s.Get(key)
	}
}
