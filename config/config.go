// Package config provides configuration loading and access for the show.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all show configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Rocket    RocketConfig    `yaml:"rocket"`
	Spark     SparkConfig     `yaml:"spark"`
	Burst     BurstConfig     `yaml:"burst"`
	Glitter   GlitterConfig   `yaml:"glitter"`
	Text      TextConfig      `yaml:"text"`
	Launch    LaunchConfig    `yaml:"launch"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Render    RenderConfig    `yaml:"render"`
	Countdown CountdownConfig `yaml:"countdown"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// RocketConfig holds rising projectile parameters.
type RocketConfig struct {
	Speed            float64 `yaml:"speed"`             // Initial speed (px/frame)
	Acceleration     float64 `yaml:"acceleration"`      // Speed multiplier per frame
	TrailLength      int     `yaml:"trail_length"`      // Positions kept for the streak
	HorizontalJitter float64 `yaml:"horizontal_jitter"` // Target X = source X ± this
	BrightnessMin    float64 `yaml:"brightness_min"`    // HSL lightness percent
	BrightnessMax    float64 `yaml:"brightness_max"`
	TargetRadius     float64 `yaml:"target_radius"`
	LineWidth        float64 `yaml:"line_width"`
}

// SparkConfig holds ascent trail particle parameters.
type SparkConfig struct {
	Chance    float64 `yaml:"chance"` // Per-frame emission probability
	Alpha     float64 `yaml:"alpha"`
	Decay     float64 `yaml:"decay"`
	Gravity   float64 `yaml:"gravity"`
	Friction  float64 `yaml:"friction"`
	VXSpread  float64 `yaml:"vx_spread"` // VX in [-spread, spread]
	VYMin     float64 `yaml:"vy_min"`
	VYMax     float64 `yaml:"vy_max"`
	SizeMin   float64 `yaml:"size_min"`
	SizeMax   float64 `yaml:"size_max"`
	Lightness float64 `yaml:"lightness"`
}

// BurstConfig holds radial explosion parameters.
type BurstConfig struct {
	CountRest           int     `yaml:"count_rest"`
	CountCelebrating    int     `yaml:"count_celebrating"`
	SpeedMin            float64 `yaml:"speed_min"`
	SpeedMaxRest        float64 `yaml:"speed_max_rest"`
	SpeedMaxCelebrating float64 `yaml:"speed_max_celebrating"`
	HueSpread           float64 `yaml:"hue_spread"` // Particle hue = rocket hue ± this
	LightnessMin        float64 `yaml:"lightness_min"`
	LightnessMax        float64 `yaml:"lightness_max"`
	SizeMin             float64 `yaml:"size_min"`
	SizeMax             float64 `yaml:"size_max"`
	DecayMin            float64 `yaml:"decay_min"`
	DecayMax            float64 `yaml:"decay_max"`
	Gravity             float64 `yaml:"gravity"`
	Friction            float64 `yaml:"friction"`
	TextChance          float64 `yaml:"text_chance"` // Share of celebrating detonations drawn as text
	Text                string  `yaml:"text"`
}

// GlitterConfig holds companion shimmer particle parameters.
type GlitterConfig struct {
	Chance      float64 `yaml:"chance"`      // Share of radial particles with a companion
	GoldChance  float64 `yaml:"gold_chance"` // Per companion: gold, otherwise white
	SpeedFactor float64 `yaml:"speed_factor"`
	SizeMin     float64 `yaml:"size_min"`
	SizeMax     float64 `yaml:"size_max"`
	DecayMin    float64 `yaml:"decay_min"`
	DecayMax    float64 `yaml:"decay_max"`
	Gravity     float64 `yaml:"gravity"`
	Friction    float64 `yaml:"friction"`
}

// TextConfig holds text rasterization and text burst parameters.
type TextConfig struct {
	LargeFontSize  float64 `yaml:"large_font_size"` // Used for text up to LargeMaxChars
	SmallFontSize  float64 `yaml:"small_font_size"`
	LargeMaxChars  int     `yaml:"large_max_chars"`
	Padding        int     `yaml:"padding"`
	AlphaThreshold uint8   `yaml:"alpha_threshold"`
	StepCountdown  int     `yaml:"step_countdown"`
	StepNormal     int     `yaml:"step_normal"`
	SizeMult       float64 `yaml:"size_mult"`
	Spread         float64 `yaml:"spread"` // Offset to velocity factor
	Jitter         float64 `yaml:"jitter"`
	Gravity        float64 `yaml:"gravity"`
	Friction       float64 `yaml:"friction"`

	CountdownHue       float64 `yaml:"countdown_hue"`
	CountdownLightness float64 `yaml:"countdown_lightness"`
	NormalLightness    float64 `yaml:"normal_lightness"`

	CountdownSizeMin  float64 `yaml:"countdown_size_min"`
	CountdownSizeMax  float64 `yaml:"countdown_size_max"`
	NormalSizeMin     float64 `yaml:"normal_size_min"`
	NormalSizeMax     float64 `yaml:"normal_size_max"`
	CountdownDecayMin float64 `yaml:"countdown_decay_min"`
	CountdownDecayMax float64 `yaml:"countdown_decay_max"`
	NormalDecayMin    float64 `yaml:"normal_decay_min"`
	NormalDecayMax    float64 `yaml:"normal_decay_max"`
}

// LaunchConfig holds autonomous launch parameters.
type LaunchConfig struct {
	ThresholdRest        int     `yaml:"threshold_rest"` // Frames between launches
	ThresholdCounting    int     `yaml:"threshold_counting"`
	ThresholdCelebrating int     `yaml:"threshold_celebrating"`
	EdgeMargin           float64 `yaml:"edge_margin"`     // Launch X in [margin, width-margin]
	TargetMinY           float64 `yaml:"target_min_y"`    // Target Y in [min, height*frac]
	TargetMaxFrac        float64 `yaml:"target_max_frac"`
}

// PointerConfig holds pointer-press burst parameters.
type PointerConfig struct {
	CountRest        int     `yaml:"count_rest"`
	CountCelebrating int     `yaml:"count_celebrating"`
	StaggerMS        int     `yaml:"stagger_ms"`
	XJitter          float64 `yaml:"x_jitter"`
	YJitter          float64 `yaml:"y_jitter"`
}

// RenderConfig holds compositing parameters.
type RenderConfig struct {
	FadeAlpha    float64 `yaml:"fade_alpha"` // Destination-out strength per frame
	HueStep      float64 `yaml:"hue_step"`
	ShimmerDecay float64 `yaml:"shimmer_decay"` // Particles decaying slower than this shimmer
	ShimmerFreq  float64 `yaml:"shimmer_freq"`  // Radians per millisecond
	ShimmerDepth float64 `yaml:"shimmer_depth"`
	ShowPanel    bool    `yaml:"show_panel"`
}

// CountdownConfig holds the host countdown sequence.
type CountdownConfig struct {
	Start       int     `yaml:"start"`
	IntervalSec float64 `yaml:"interval_sec"`
	IntroSec    float64 `yaml:"intro_sec"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameDuration time.Duration // 1 / Screen.TargetFPS
	Stagger       time.Duration // Pointer.StaggerMS
	CountInterval time.Duration // Countdown.IntervalSec
	IntroDuration time.Duration // Countdown.IntroSec
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would stall the frame loop or divide by zero.
func (c *Config) validate() error {
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Rocket.TrailLength < 1 {
		return fmt.Errorf("rocket.trail_length must be at least 1, got %d", c.Rocket.TrailLength)
	}
	if c.Text.StepCountdown < 1 || c.Text.StepNormal < 1 {
		return fmt.Errorf("text scan steps must be at least 1")
	}
	if c.Launch.ThresholdRest < 1 || c.Launch.ThresholdCounting < 1 || c.Launch.ThresholdCelebrating < 1 {
		return fmt.Errorf("launch thresholds must be at least 1")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameDuration = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.Stagger = time.Duration(c.Pointer.StaggerMS) * time.Millisecond
	c.Derived.CountInterval = seconds(c.Countdown.IntervalSec)
	c.Derived.IntroDuration = seconds(c.Countdown.IntroSec)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
