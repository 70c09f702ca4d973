package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSpeed              = 0.4
	MinSpeed                  = 0.4
	DefaultMaxSpeed           = 20.0
	DefaultFPS                = 60
	DefaultFOV                = 75.0
	DefaultApproachDistance   = 30.0
	DefaultTransitionDuration = time.Second
	DefaultEasing             = "quadratic.out"
	DefaultDamping            = 0.05
	DefaultHoverScale         = 1.05
	DefaultHighlightRadius    = 1.2
	DefaultTimeout            = 10 * time.Second
	DefaultRatePerSecond      = 2.0

	DefaultCatalogURL = "https://api.le-systeme-solaire.net/rest/bodies/"
	DefaultChatURL    = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"
	DefaultNewsURL    = "https://api.nasa.gov/DONKI/CME"
)

const (
	EnvChatKey    = "ORRERY_CHAT_KEY"
	EnvNewsKey    = "ORRERY_NEWS_KEY"
	EnvCatalogKey = "ORRERY_CATALOG_KEY"
)

var ErrInvalidConfig = errors.New("orrery: invalid config")

type Config struct {
	Speed     float64       `yaml:"speed" toml:"speed"`
	MaxSpeed  float64       `yaml:"max_speed" toml:"max_speed"`
	RealView  bool          `yaml:"real_view" toml:"real_view"`
	ShowPaths bool          `yaml:"show_paths" toml:"show_paths"`
	FPS       int           `yaml:"fps" toml:"fps"`
	Seed      int64         `yaml:"seed" toml:"seed"`
	Camera    CameraConfig  `yaml:"camera" toml:"camera"`
	Hover     HoverConfig   `yaml:"hover" toml:"hover"`
	Remote    RemoteConfig  `yaml:"remote" toml:"remote"`
	Storage   StorageConfig `yaml:"storage" toml:"storage"`
	Logging   LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics   MetricsConfig `yaml:"metrics" toml:"metrics"`
}

type CameraConfig struct {
	FOV                float64       `yaml:"fov" toml:"fov"`
	Position           []float64     `yaml:"position" toml:"position"`
	ApproachDistance   float64       `yaml:"approach_distance" toml:"approach_distance"`
	TransitionDuration time.Duration `yaml:"transition_duration" toml:"transition_duration"`
	Easing             string        `yaml:"easing" toml:"easing"`
	Damping            float64       `yaml:"damping" toml:"damping"`
}

type HoverConfig struct {
	Scale           float64 `yaml:"scale" toml:"scale"`
	HighlightRadius float64 `yaml:"highlight_radius" toml:"highlight_radius"`
}

type RemoteConfig struct {
	CatalogURL    string        `yaml:"catalog_url" toml:"catalog_url"`
	CatalogKey    string        `yaml:"catalog_key,omitempty" toml:"catalog_key,omitempty"`
	ChatURL       string        `yaml:"chat_url" toml:"chat_url"`
	ChatKey       string        `yaml:"chat_key,omitempty" toml:"chat_key,omitempty"`
	NewsURL       string        `yaml:"news_url" toml:"news_url"`
	NewsKey       string        `yaml:"news_key,omitempty" toml:"news_key,omitempty"`
	Timeout       time.Duration `yaml:"timeout" toml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second" toml:"rate_per_second"`
}

type StorageConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file" toml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:     DefaultSpeed,
		MaxSpeed:  DefaultMaxSpeed,
		RealView:  true,
		ShowPaths: true,
		FPS:       DefaultFPS,
		Seed:      1,
		Camera: CameraConfig{
			FOV:                DefaultFOV,
			Position:           []float64{-50, 90, 150},
			ApproachDistance:   DefaultApproachDistance,
			TransitionDuration: DefaultTransitionDuration,
			Easing:             DefaultEasing,
			Damping:            DefaultDamping,
		},
		Hover: HoverConfig{
			Scale:           DefaultHoverScale,
			HighlightRadius: DefaultHighlightRadius,
		},
		Remote: RemoteConfig{
			CatalogURL:    DefaultCatalogURL,
			ChatURL:       DefaultChatURL,
			NewsURL:       DefaultNewsURL,
			Timeout:       DefaultTimeout,
			RatePerSecond: DefaultRatePerSecond,
		},
		Storage: StorageConfig{Dir: defaultDataDir()},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "orrery")
	}
	return ".orrery"
}

// Load reads a yaml or toml file over the defaults. The format follows the
// file extension; anything other than .toml is treated as yaml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ApplyEnv fills API keys from the environment when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvChatKey); v != "" {
		c.Remote.ChatKey = v
	}
	if v := os.Getenv(EnvNewsKey); v != "" {
		c.Remote.NewsKey = v
	}
	if v := os.Getenv(EnvCatalogKey); v != "" {
		c.Remote.CatalogKey = v
	}
}

func (c *Config) Validate() error {
	switch {
	case c.MaxSpeed < MinSpeed:
		return fmt.Errorf("%w: max_speed %g below minimum %g", ErrInvalidConfig, c.MaxSpeed, MinSpeed)
	case c.Speed < MinSpeed || c.Speed > c.MaxSpeed:
		return fmt.Errorf("%w: speed %g outside [%g, %g]", ErrInvalidConfig, c.Speed, MinSpeed, c.MaxSpeed)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %g outside (0, 180)", ErrInvalidConfig, c.Camera.FOV)
	case len(c.Camera.Position) != 3:
		return fmt.Errorf("%w: camera position needs 3 components, got %d", ErrInvalidConfig, len(c.Camera.Position))
	case c.Camera.ApproachDistance <= 0:
		return fmt.Errorf("%w: approach_distance must be positive", ErrInvalidConfig)
	case c.Camera.TransitionDuration < 0:
		return fmt.Errorf("%w: transition_duration must not be negative", ErrInvalidConfig)
	case c.Camera.Damping <= 0 || c.Camera.Damping > 1:
		return fmt.Errorf("%w: damping %g outside (0, 1]", ErrInvalidConfig, c.Camera.Damping)
	case c.Hover.Scale < 1:
		return fmt.Errorf("%w: hover scale %g below 1", ErrInvalidConfig, c.Hover.Scale)
	case c.Remote.Timeout <= 0:
		return fmt.Errorf("%w: remote timeout must be positive", ErrInvalidConfig)
	case c.Remote.RatePerSecond <= 0:
		return fmt.Errorf("%w: rate_per_second must be positive", ErrInvalidConfig)
	}
	return nil
}
