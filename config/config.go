package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/swdee/go-objtrack/tracker"
)

// EnvPrefix is the prefix of environment variables overriding settings, eg:
// OBJTRACK_TRACKER_MAX_DISAPPEARED
const EnvPrefix = "OBJTRACK"

// Detector kinds
const (
	DetectMotion = "motion"
	DetectNet    = "net"
)

// Config holds the settings for running the tracker over a video source
type Config struct {
	Tracker TrackerConfig `mapstructure:"tracker"`
	Detect  DetectConfig  `mapstructure:"detect"`
	Server  ServerConfig  `mapstructure:"server"`
}

// TrackerConfig holds the centroid tracker settings
type TrackerConfig struct {
	// MaxDisappeared is the number of consecutive unmatched frames before an
	// object is deregistered
	MaxDisappeared int `mapstructure:"max_disappeared"`
	// MaxDistance is the maximum centroid distance in pixels to match an
	// observation to an object
	MaxDistance float64 `mapstructure:"max_distance"`
	// Visual is the OpenCV visual tracker kind used between detections
	Visual string `mapstructure:"visual"`
	// EstimateWorkers is the number of goroutines polling visual trackers
	EstimateWorkers int `mapstructure:"estimate_workers"`
	// TrailSize is the number of centroids kept per object for drawing
	TrailSize int `mapstructure:"trail_size"`
}

// DetectConfig holds the detector settings
type DetectConfig struct {
	// Kind is the detector to use, motion or net
	Kind string `mapstructure:"kind"`
	// Interval runs the detector every Interval frames, visual tracker
	// estimates are used for the frames in between
	Interval int `mapstructure:"interval"`
	// MinArea is the motion detector minimum region area in pixels
	MinArea float64 `mapstructure:"min_area"`
	// ScaleWidth is the motion detector working width
	ScaleWidth int `mapstructure:"scale_width"`
	// Model, ModelConfig and Labels are the net detector files
	Model       string `mapstructure:"model"`
	ModelConfig string `mapstructure:"config"`
	Labels      string `mapstructure:"labels"`
	// Classes restricts net detections to these labels
	Classes []string `mapstructure:"classes"`
	// BoxThreshold is the net detector minimum confidence
	BoxThreshold float32 `mapstructure:"box_threshold"`
	// NMSThreshold is the net detector non-maximum suppression threshold
	NMSThreshold float32 `mapstructure:"nms_threshold"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// setDefaults registers the default value of every setting
func setDefaults(v *viper.Viper) {
	v.SetDefault("tracker.max_disappeared", tracker.DefaultMaxDisappeared)
	v.SetDefault("tracker.max_distance", tracker.DefaultMaxDistance)
	v.SetDefault("tracker.visual", string(tracker.VisualKCF))
	v.SetDefault("tracker.estimate_workers", 1)
	v.SetDefault("tracker.trail_size", 60)

	v.SetDefault("detect.kind", DetectMotion)
	v.SetDefault("detect.interval", 10)
	v.SetDefault("detect.min_area", 500)
	v.SetDefault("detect.scale_width", 640)
	v.SetDefault("detect.model", "")
	v.SetDefault("detect.config", "")
	v.SetDefault("detect.labels", "")
	v.SetDefault("detect.classes", []string{})
	v.SetDefault("detect.box_threshold", 0.5)
	v.SetDefault("detect.nms_threshold", 0.4)

	v.SetDefault("server.addr", "localhost:8080")
}

// Default returns the default configuration
func Default() *Config {

	cfg, err := load(viper.New())

	if err != nil {
		// defaults always validate
		panic(err)
	}

	return cfg
}

// Load reads the configuration file at path, which may be YAML, JSON or TOML
// depending on its extension.  An empty path only applies defaults and
// environment variables.
func Load(path string) (*Config, error) {

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	return load(v)
}

// load applies defaults and environment overrides to v then decodes and
// validates the result
func load(v *viper.Viper) (*Config, error) {

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values are usable
func (c *Config) Validate() error {

	var errs []error

	if c.Tracker.MaxDisappeared < 0 {
		errs = append(errs, fmt.Errorf("tracker.max_disappeared must be >= 0, got %d",
			c.Tracker.MaxDisappeared))
	}

	if c.Tracker.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("tracker.max_distance must be > 0, got %v",
			c.Tracker.MaxDistance))
	}

	if _, err := tracker.NewVisualTrackerFactory(tracker.VisualKind(c.Tracker.Visual)); err != nil {
		errs = append(errs, fmt.Errorf("tracker.visual: %w", err))
	}

	if c.Tracker.EstimateWorkers < 1 {
		errs = append(errs, fmt.Errorf("tracker.estimate_workers must be >= 1, got %d",
			c.Tracker.EstimateWorkers))
	}

	if c.Detect.Interval < 1 {
		errs = append(errs, fmt.Errorf("detect.interval must be >= 1, got %d",
			c.Detect.Interval))
	}

	switch c.Detect.Kind {
	case DetectMotion:
	case DetectNet:
		if c.Detect.Model == "" {
			errs = append(errs, errors.New("detect.model is required for the net detector"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown detect.kind %q", c.Detect.Kind))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
