package config

import (
	"github.com/taiyousan15/ocrqc/internal/qc"
)

// Config holds ocrqc configuration.
// Stored at: ~/.ocrqc/config.yaml
type Config struct {
	Engine qc.Config `mapstructure:"engine" yaml:"engine"`
	Server ServerCfg `mapstructure:"server" yaml:"server"`
	Batch  BatchCfg  `mapstructure:"batch" yaml:"batch"`
	Log    LogCfg    `mapstructure:"log" yaml:"log"`
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"` // Address to bind to
	Port string `mapstructure:"port" yaml:"port"` // Port to listen on
}

// BatchCfg configures batch document processing.
type BatchCfg struct {
	MaxWorkers int    `mapstructure:"max_workers" yaml:"max_workers"` // Max concurrent workers
	Pattern    string `mapstructure:"pattern" yaml:"pattern"`         // Glob for input files
}

// LogCfg configures logging output.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// ToEngineConfig returns the engine section of the configuration.
func (c *Config) ToEngineConfig() qc.Config {
	return c.Engine
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: qc.DefaultConfig(),
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Batch: BatchCfg{
			MaxWorkers: 4,
			Pattern:    "*.yaml",
		},
		Log: LogCfg{
			Level: "info",
		},
	}
}
