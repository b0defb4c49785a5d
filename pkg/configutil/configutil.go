package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localName turns "dir/config.json5" into "dir/config.local.json5".
func localName(name string) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)
}

func readLayer[T any](path string) (T, bool, error) {
	var out T
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if len(contents) == 0 {
		return out, false, nil
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, fmt.Errorf("%s: %w", path, err)
	}
	return out, true, nil
}

// ReadConfig reads a json5 config file and merges layers on top of it, later layers
// win over earlier ones:
//  1. defaults
//  2. <name>.<ext>
//  3. <name>.local.<ext> (meant to stay out of version control)
//
// Zero valued fields of a layer never override the layer below. os.ErrNotExist is
// returned when neither file exists.
func ReadConfig[T any](name string, defaults T) (T, error) {
	out := defaults

	found := false
	for _, path := range []string{name, localName(name)} {
		layer, ok, err := readLayer[T](path)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Debug("merged config layer", "path", path)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// Override merges the non-zero fields of override into config, used to let environment
// variables and flags win over files.
func Override[T any](config *T, override T) error {
	return mergo.Merge(config, override, mergo.WithOverride)
}
