package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/wedding-timeline/internal/domain"
)

// LoadDefaults reads the photographer defaults file at path and overlays it
// on the built-in defaults, so the file only needs the values it changes:
//
//	buffer_minutes: 10
//	reception:
//	  dinner_minutes: 45
//
// An empty path or a missing file yields the built-in defaults. Unknown keys,
// malformed YAML and negative durations are errors.
func LoadDefaults(path string) (domain.Defaults, error) {
	d := domain.BuiltinDefaults()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d, nil
		}
		return domain.Defaults{}, fmt.Errorf("config.LoadDefaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return domain.Defaults{}, fmt.Errorf("config.LoadDefaults: parse %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		return domain.Defaults{}, fmt.Errorf("config.LoadDefaults: %s: %w", path, err)
	}
	return d, nil
}
