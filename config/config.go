package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/golangdaddy/turbonitro/audio"
	"github.com/golangdaddy/turbonitro/commentary"
	"github.com/golangdaddy/turbonitro/physics"
)

// FileName is the config file looked up in the config directory
const FileName = "turbonitro.cfg.json"

// EnvPrefix prefixes every environment override, e.g. TURBONITRO_LOGLEVEL
const EnvPrefix = "TURBONITRO"

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// GraylogConfig holds the optional GELF sink
type GraylogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// WindowConfig holds host window settings
type WindowConfig struct {
	Scale float64 `mapstructure:"scale"`
	Title string  `mapstructure:"title"`
}

// RaceConfig holds session timing and spawn cadence
type RaceConfig struct {
	TickRate        int           `mapstructure:"tickRate"`
	ResultDelay     time.Duration `mapstructure:"resultDelay"`
	TrafficInterval int           `mapstructure:"trafficInterval"`
	FeatureInterval int           `mapstructure:"featureInterval"`
	Seed            int64         `mapstructure:"seed"` // 0 seeds from the clock
}

// ResultDelayTicks converts the result delay to whole ticks
func (r RaceConfig) ResultDelayTicks() int {
	return int(r.ResultDelay.Seconds()*float64(r.TickRate) + 0.5)
}

// Config is the full typed configuration
type Config struct {
	LogLevel   string            `mapstructure:"logLevel"`
	LogFile    string            `mapstructure:"logFile"`
	Graylog    GraylogConfig     `mapstructure:"graylog"`
	Window     WindowConfig      `mapstructure:"window"`
	Race       RaceConfig        `mapstructure:"race"`
	Audio      audio.Config      `mapstructure:"audio"`
	Commentary commentary.Config `mapstructure:"commentary"`
	Physics    physics.Tuning    `mapstructure:"physics"`
}

// Load reads configuration from the JSON file in configDir, environment overrides
// and defaults. A missing file is fine; a malformed one is not.
func Load(configDir string) (*Config, error) {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("window.scale", 0.75)
	viper.SetDefault("window.title", "Turbo Nitro")

	viper.SetDefault("race.tickRate", 60)
	viper.SetDefault("race.resultDelay", 1500*time.Millisecond)
	viper.SetDefault("race.trafficInterval", 60)
	viper.SetDefault("race.featureInterval", 240)
	viper.SetDefault("race.seed", 0)

	if err := setDefaults("audio", audio.DefaultConfig()); err != nil {
		return nil, err
	}
	if err := setDefaults("commentary", commentary.DefaultConfig()); err != nil {
		return nil, err
	}
	if err := setDefaults("physics", physics.Default()); err != nil {
		return nil, err
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("commentary.apiKey", EnvPrefix+"_COMMENTARY_APIKEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding env: %w", err)
	}

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the session cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Race.TickRate <= 0:
		return fmt.Errorf("%w: race.tickRate must be positive, got %d", ErrInvalid, c.Race.TickRate)
	case c.Race.TrafficInterval <= 0:
		return fmt.Errorf("%w: race.trafficInterval must be positive, got %d", ErrInvalid, c.Race.TrafficInterval)
	case c.Race.ResultDelay < 0:
		return fmt.Errorf("%w: race.resultDelay must not be negative", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0,1], got %g", ErrInvalid, c.Audio.Volume)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: physics: %w", ErrInvalid, err)
	}
	return nil
}

// setDefaults registers every field of a struct's zero-config under prefix
func setDefaults(prefix string, v any) error {
	var m map[string]any
	if err := mapstructure.Decode(v, &m); err != nil {
		return fmt.Errorf("error building %s defaults: %w", prefix, err)
	}
	for k, val := range m {
		viper.SetDefault(prefix+"."+k, val)
	}
	return nil
}
