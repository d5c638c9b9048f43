package hull

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yz3440/nyc-park-study/internal/fsutil"
)

// Tuning holds the fixed parameters of one pipeline run. Distances and
// areas are expressed in real-world meters; conversion to the angular
// units of the geometry happens once inside the searcher and sieve.
// Values are copied into the pipeline at construction, so tests can
// vary them per case without touching globals.
type Tuning struct {
	// BaseThresholdMeters is the concave hull edge-length threshold for
	// the first attempt.
	BaseThresholdMeters float64

	// ThresholdIncrementMeters is added to the threshold after each
	// failed or still-fragmented attempt.
	ThresholdIncrementMeters float64

	// MaxAttempts bounds the number of hull computations per feature.
	MaxAttempts int

	// TinyFragmentSqMeters is the area below which a stray second
	// polygon part is dropped rather than merged.
	TinyFragmentSqMeters float64

	// NameProperty is the property key holding the display name used
	// for whitelisting, logging and issue records.
	NameProperty string

	// Whitelist restricts processing to the named features. Empty means
	// process everything.
	Whitelist []string
}

// DefaultTuning returns the parameters the NYC parks dataset was
// processed with.
func DefaultTuning() Tuning {
	return Tuning{
		BaseThresholdMeters:      50,
		ThresholdIncrementMeters: 20,
		MaxAttempts:              100,
		TinyFragmentSqMeters:     500,
		NameProperty:             "eapply",
	}
}

// Validate checks the tuning for values the search loop cannot work with.
func (t Tuning) Validate() error {
	if t.BaseThresholdMeters <= 0 {
		return fmt.Errorf("base threshold must be positive, got %v", t.BaseThresholdMeters)
	}
	if t.ThresholdIncrementMeters <= 0 {
		return fmt.Errorf("threshold increment must be positive, got %v", t.ThresholdIncrementMeters)
	}
	if t.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", t.MaxAttempts)
	}
	if t.TinyFragmentSqMeters < 0 {
		return fmt.Errorf("tiny fragment cutoff must not be negative, got %v", t.TinyFragmentSqMeters)
	}
	if t.NameProperty == "" {
		return fmt.Errorf("name property must not be empty")
	}
	return nil
}

// tuningFile is the JSON schema for on-disk tuning overrides. Fields
// are pointers so a partial file only overrides what it names.
type tuningFile struct {
	BaseThresholdMeters      *float64 `json:"base_threshold_meters,omitempty"`
	ThresholdIncrementMeters *float64 `json:"threshold_increment_meters,omitempty"`
	MaxAttempts              *int     `json:"max_attempts,omitempty"`
	TinyFragmentSqMeters     *float64 `json:"tiny_fragment_sq_meters,omitempty"`
	NameProperty             *string  `json:"name_property,omitempty"`
	Whitelist                []string `json:"whitelist,omitempty"`
}

// LoadTuning reads a JSON tuning file and applies it over the defaults.
// Fields omitted from the file retain their default values, so partial
// configs are safe.
func LoadTuning(fsys fsutil.FileSystem, path string) (Tuning, error) {
	t := DefaultTuning()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return t, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}

	var tf tuningFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return t, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}

	if tf.BaseThresholdMeters != nil {
		t.BaseThresholdMeters = *tf.BaseThresholdMeters
	}
	if tf.ThresholdIncrementMeters != nil {
		t.ThresholdIncrementMeters = *tf.ThresholdIncrementMeters
	}
	if tf.MaxAttempts != nil {
		t.MaxAttempts = *tf.MaxAttempts
	}
	if tf.TinyFragmentSqMeters != nil {
		t.TinyFragmentSqMeters = *tf.TinyFragmentSqMeters
	}
	if tf.NameProperty != nil {
		t.NameProperty = *tf.NameProperty
	}
	if tf.Whitelist != nil {
		t.Whitelist = tf.Whitelist
	}

	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}
