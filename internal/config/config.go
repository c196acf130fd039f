package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the root configuration of the auction server
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Gin       GinConfig       `mapstructure:"gin"`
	Seed      SeedConfig      `mapstructure:"seed"`
	WS        WSConfig        `mapstructure:"ws"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// GinConfig selects the gin mode
type GinConfig struct {
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"`
}

// SeedConfig points at the lot catalogue. An empty File uses the built-in catalogue.
type SeedConfig struct {
	File    string `mapstructure:"file"`
	Enabled bool   `mapstructure:"enabled"`
}

// WSConfig holds websocket subscriber settings
type WSConfig struct {
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout" validate:"gt=0"`
	PingInterval    time.Duration `mapstructure:"ping_interval" validate:"gt=0,ltfield=PongTimeout"`
	SendBuffer      int           `mapstructure:"send_buffer" validate:"min=1"`
	MaxMessageBytes int64         `mapstructure:"max_message_bytes" validate:"min=64"`
}

// DashboardConfig holds aggregate query settings
type DashboardConfig struct {
	TopN int `mapstructure:"top_n" validate:"min=1"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("seed.file", "")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("ws.write_timeout", 5*time.Second)
	v.SetDefault("ws.pong_timeout", 60*time.Second)
	v.SetDefault("ws.ping_interval", 30*time.Second)
	v.SetDefault("ws.send_buffer", 64)
	v.SetDefault("ws.max_message_bytes", 4096)
	v.SetDefault("dashboard.top_n", 3)
}

// Load reads configuration from defaults, an optional config file and the environment.
// Environment variables use the AUCTION_ prefix, e.g. AUCTION_SERVER_PORT; PORT is also honoured.
func Load(configFile string) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("AUCTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "AUCTION_SERVER_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("config: bind env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
