package grasp

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default gesture thresholds, in scene length units unless noted.
const (
	// DefaultTouchRadius is the maximum fingertip-to-shape distance for a
	// touch or highlight to register.
	DefaultTouchRadius = 0.15
	// DefaultPinchHold is how long a pinch must be sustained before a
	// highlighted shape is picked up.
	DefaultPinchHold = 500 * time.Millisecond
	// DefaultMaxPinchWidth is the thumb-index span beyond which a held
	// shape is dropped.
	DefaultMaxPinchWidth = 0.045
	// DefaultMinPinchGap is the minimum thumb-index distance for the pinch
	// and OK poses to count as a deliberate hold rather than resting
	// fingers.
	DefaultMinPinchGap = 0.0095
	// DefaultConfidenceFloor is the tracking confidence below which Moving
	// skips the frame entirely.
	DefaultConfidenceFloor = 0.95
	// DefaultThumbRadius is the volumetric probe radius around the thumb
	// tip used by the pinch predicate.
	DefaultThumbRadius = 0.05
)

// Config holds the gesture thresholds shared by TouchTracker and PinchDrag.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	TouchRadius     float64
	PinchHold       time.Duration
	MaxPinchWidth   float64
	MinPinchGap     float64
	ConfidenceFloor float64
	ThumbRadius     float64
	// ResetPose is the hand pose that restores shapes to their home
	// positions while selecting.
	ResetPose HandPose
}

// DefaultConfig returns the built-in thresholds with open-hand as the
// reset pose.
func DefaultConfig() Config {
	return Config{
		TouchRadius:     DefaultTouchRadius,
		PinchHold:       DefaultPinchHold,
		MaxPinchWidth:   DefaultMaxPinchWidth,
		MinPinchGap:     DefaultMinPinchGap,
		ConfidenceFloor: DefaultConfidenceFloor,
		ThumbRadius:     DefaultThumbRadius,
		ResetPose:       PoseOpenHand,
	}
}

// Validate reports the first threshold that is out of range.
func (c Config) Validate() error {
	switch {
	case c.TouchRadius <= 0:
		return fmt.Errorf("config: touch_radius must be positive, got %v", c.TouchRadius)
	case c.PinchHold < 0:
		return fmt.Errorf("config: pinch_hold must not be negative, got %v", c.PinchHold)
	case c.MaxPinchWidth <= 0:
		return fmt.Errorf("config: max_pinch_width must be positive, got %v", c.MaxPinchWidth)
	case c.MinPinchGap < 0:
		return fmt.Errorf("config: min_pinch_gap must not be negative, got %v", c.MinPinchGap)
	case c.MinPinchGap >= c.MaxPinchWidth:
		return fmt.Errorf("config: min_pinch_gap %v must be below max_pinch_width %v", c.MinPinchGap, c.MaxPinchWidth)
	case c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1:
		return fmt.Errorf("config: confidence_floor must be in [0, 1], got %v", c.ConfidenceFloor)
	case c.ThumbRadius <= 0:
		return fmt.Errorf("config: thumb_radius must be positive, got %v", c.ThumbRadius)
	}
	return nil
}

// UnmarshalYAML decodes a config document on top of the defaults, so a file
// only needs the keys it overrides. Durations use Go syntax ("500ms");
// poses use their names ("open-hand", "pinch", "c", "ok").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type raw struct {
		TouchRadius     *float64 `yaml:"touch_radius"`
		PinchHold       *string  `yaml:"pinch_hold"`
		MaxPinchWidth   *float64 `yaml:"max_pinch_width"`
		MinPinchGap     *float64 `yaml:"min_pinch_gap"`
		ConfidenceFloor *float64 `yaml:"confidence_floor"`
		ThumbRadius     *float64 `yaml:"thumb_radius"`
		ResetPose       *string  `yaml:"reset_pose"`
	}

	var r raw
	if err := value.Decode(&r); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	*c = DefaultConfig()
	if r.TouchRadius != nil {
		c.TouchRadius = *r.TouchRadius
	}
	if r.PinchHold != nil {
		d, err := time.ParseDuration(*r.PinchHold)
		if err != nil {
			return fmt.Errorf("config: pinch_hold: %w", err)
		}
		c.PinchHold = d
	}
	if r.MaxPinchWidth != nil {
		c.MaxPinchWidth = *r.MaxPinchWidth
	}
	if r.MinPinchGap != nil {
		c.MinPinchGap = *r.MinPinchGap
	}
	if r.ConfidenceFloor != nil {
		c.ConfidenceFloor = *r.ConfidenceFloor
	}
	if r.ThumbRadius != nil {
		c.ThumbRadius = *r.ThumbRadius
	}
	if r.ResetPose != nil {
		pose, err := ParsePose(*r.ResetPose)
		if err != nil {
			return fmt.Errorf("config: reset_pose: %w", err)
		}
		c.ResetPose = pose
	}
	return nil
}

// ParseConfig decodes and validates a YAML config document.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return ParseConfig(data)
}
