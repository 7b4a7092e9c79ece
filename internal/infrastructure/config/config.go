package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ModelConfig holds model and label source settings
type ModelConfig struct {
	Path         string        `mapstructure:"path"`
	MetadataPath string        `mapstructure:"metadata_path"`
	LabelsPath   string        `mapstructure:"labels_path"`
	InferTimeout time.Duration `mapstructure:"infer_timeout"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the
// SIGNSPEAK_ prefix, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SIGNSPEAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	// Model defaults
	v.SetDefault("model.path", "./models/sequential_inference.onnx")
	v.SetDefault("model.metadata_path", "./models/model_metadata.json")
	v.SetDefault("model.labels_path", "./models/class_labels.json")
	v.SetDefault("model.infer_timeout", 10*time.Second)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
