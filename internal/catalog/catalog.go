package catalog

import (
	"fmt"
	"strings"

	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
)

// Stage is a growth phase. Days is relative to the end of the previous stage.
type Stage struct {
	Name       string   `yaml:"name"`
	Days       int      `yaml:"days"`
	Activities []string `yaml:"activities"`
}

// FertilizerEvent is always relative to the planting date, never to a stage boundary.
type FertilizerEvent struct {
	Day        int    `yaml:"day"`
	Fertilizer string `yaml:"fertilizer"`
	Stage      string `yaml:"stage"`
}

// Definition is the schedule of one crop.
type Definition struct {
	Key          string            `yaml:"key"`
	DurationDays int               `yaml:"duration_days"`
	Stages       []Stage           `yaml:"stages"`
	Fertilizer   []FertilizerEvent `yaml:"fertilizer_schedule"`
}

// StageDays returns the sum of all stage durations.
func (d Definition) StageDays() int {
	total := 0
	for _, s := range d.Stages {
		total += s.Days
	}
	return total
}

// Validate checks the definition. In strict mode the stage durations must add
// up to DurationDays, otherwise the harvest date and the last stage end drift apart.
func (d Definition) Validate(strict bool) error {
	if strings.TrimSpace(d.Key) == "" {
		return apperrors.InvalidArgumentf("crop definition without a key")
	}
	if d.DurationDays <= 0 {
		return apperrors.InvalidArgumentf("crop %q: duration_days must be positive, got %d", d.Key, d.DurationDays)
	}
	if len(d.Stages) == 0 {
		return apperrors.InvalidArgumentf("crop %q: at least one stage is required", d.Key)
	}
	for i, s := range d.Stages {
		if strings.TrimSpace(s.Name) == "" {
			return apperrors.InvalidArgumentf("crop %q: stage %d has no name", d.Key, i+1)
		}
		if s.Days <= 0 {
			return apperrors.InvalidArgumentf("crop %q: stage %q must last at least one day", d.Key, s.Name)
		}
	}
	for _, f := range d.Fertilizer {
		if f.Day < 0 {
			return apperrors.InvalidArgumentf("crop %q: fertilizer %q has a negative day offset", d.Key, f.Fertilizer)
		}
	}
	if strict && d.StageDays() != d.DurationDays {
		return apperrors.InvalidArgumentf("crop %q: stages add up to %d days but duration_days is %d",
			d.Key, d.StageDays(), d.DurationDays)
	}
	return nil
}

// Catalog is an immutable keyed registry of crop definitions with an explicit
// fallback entry for unknown crop names.
type Catalog struct {
	defs       map[string]Definition
	order      []string
	defaultKey string
}

type options struct {
	lenient bool
}

// Option configures catalog construction.
type Option func(*options)

// WithLenient accepts definitions whose stage durations do not add up to
// DurationDays. The mismatch is logged instead of rejected.
func WithLenient() Option {
	return func(o *options) { o.lenient = true }
}

// New builds a catalog and validates every definition. defaultKey must name
// one of defs; Lookup returns it for unknown crops.
func New(defs []Definition, defaultKey string, opts ...Option) (*Catalog, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Catalog{
		defs:       make(map[string]Definition, len(defs)),
		defaultKey: defaultKey,
	}
	for _, d := range defs {
		if err := d.Validate(!o.lenient); err != nil {
			return nil, err
		}
		if o.lenient && d.StageDays() != d.DurationDays {
			logger.Warn("Crop stages do not add up to the crop duration",
				"crop", d.Key, "stage_days", d.StageDays(), "duration_days", d.DurationDays)
		}
		if _, dup := c.defs[d.Key]; dup {
			return nil, apperrors.InvalidArgumentf("duplicate crop definition %q", d.Key)
		}
		c.defs[d.Key] = d
		c.order = append(c.order, d.Key)
	}
	if _, ok := c.defs[defaultKey]; !ok {
		return nil, apperrors.InvalidArgumentf("default crop %q is not defined", defaultKey)
	}
	return c, nil
}

// Lookup returns the definition for key, or the default definition when key
// is unknown. Callers must not assume the returned Key equals the input.
func (c *Catalog) Lookup(key string) Definition {
	if d, ok := c.defs[key]; ok {
		return d
	}
	logger.Debug("Unknown crop, using default schedule", "crop", key, "default", c.defaultKey)
	return c.defs[c.defaultKey]
}

// Has reports whether key is defined.
func (c *Catalog) Has(key string) bool {
	_, ok := c.defs[key]
	return ok
}

// Keys returns the crop keys in definition order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// DefaultKey returns the fallback crop key.
func (c *Catalog) DefaultKey() string {
	return c.defaultKey
}

// Definitions returns all definitions in definition order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.defs[k])
	}
	return out
}

// Builtin returns the compiled-in catalog.
func Builtin() *Catalog {
	c, err := New(builtinDefinitions(), constants.DefaultCropKey)
	if err != nil {
		panic(fmt.Sprintf("builtin crop catalog is invalid: %v", err))
	}
	return c
}
