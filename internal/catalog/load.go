package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
)

// file is the on-disk shape of a catalog override.
type file struct {
	Default string       `yaml:"default"`
	Crops   []Definition `yaml:"crops"`
}

// Load reads a YAML catalog override and merges it over the built-in
// definitions. Entries with an existing key replace it in place, new keys are
// appended. An empty path returns the built-in catalog.
func Load(path string, opts ...Option) (*Catalog, error) {
	if path == "" {
		return New(builtinDefinitions(), constants.DefaultCropKey, opts...)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.InvalidArgumentf("failed to read crop catalog %s: %v", path, err)
	}
	return Parse(data, opts...)
}

// Parse merges a YAML catalog document over the built-in definitions.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.InvalidArgumentf("failed to parse crop catalog: %v", err)
	}

	defs := builtinDefinitions()
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		index[d.Key] = i
	}
	for _, d := range f.Crops {
		if i, ok := index[d.Key]; ok {
			defs[i] = d
			continue
		}
		index[d.Key] = len(defs)
		defs = append(defs, d)
	}

	defaultKey := constants.DefaultCropKey
	if f.Default != "" {
		defaultKey = f.Default
	}

	logger.Debug("Loaded crop catalog", "overrides", len(f.Crops), "crops", len(defs), "default", defaultKey)
	return New(defs, defaultKey, opts...)
}
