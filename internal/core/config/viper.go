package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"db-url":     "server.db_url",
	"log-level":  "log.level",
	"log-format": "log.format",
	"host":       "server.host",
	"port":       "server.port",
	"metrics":    "server.metrics_addr",
}

// LoadConfig loads configuration using viper.
// CLI flags > environment (ONTO_ prefix) > config file > defaults.
// flags may be nil; only flags the user actually set override lower layers.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*ServerConfig, error) {
	v := viper.New()
	def := DefaultServerConfig()

	v.SetDefault("server.host", def.Host)
	v.SetDefault("server.port", def.Port)
	v.SetDefault("server.metrics_addr", def.MetricsAddr)
	v.SetDefault("server.request_timeout", def.RequestTimeout.String())
	v.SetDefault("server.db_url", def.DBURL)
	v.SetDefault("server.max_structure_nodes", def.MaxStructureNodes)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("log.format", def.LogFormat)

	v.SetEnvPrefix("ONTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets are environment-only.
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &ServerConfig{
		Host:              v.GetString("server.host"),
		Port:              v.GetInt("server.port"),
		MetricsAddr:       v.GetString("server.metrics_addr"),
		RequestTimeout:    v.GetDuration("server.request_timeout"),
		DBURL:             v.GetString("server.db_url"),
		MaxStructureNodes: v.GetInt("server.max_structure_nodes"),
		LogLevel:          v.GetString("log.level"),
		LogFormat:         v.GetString("log.format"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks port range and positive timeout and node limit.
func validateConfig(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxStructureNodes <= 0 {
		return fmt.Errorf("max_structure_nodes must be positive, got %d", cfg.MaxStructureNodes)
	}
	if cfg.DBURL == "" {
		return fmt.Errorf("db_url must not be empty")
	}
	return nil
}

func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.InConfig("hmac_secret") || v.InConfig("server.hmac_secret") {
		return fmt.Errorf("HMAC secrets not allowed in config files (use ONTO_HMAC_SECRET environment variable)")
	}
	return nil
}
