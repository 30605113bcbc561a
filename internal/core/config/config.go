// Package config provides configuration management for the screening
// ontology server and CLI.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Environment variables holding API key signing secrets.
const (
	EnvHMACSecret       = "ONTO_HMAC_SECRET"
	envHMACSecretPrefix = "ONTO_HMAC_SECRET_"
)

// ServerConfig holds configuration for the gRPC ontology service.
type ServerConfig struct {
	Host              string
	Port              int
	MetricsAddr       string
	RequestTimeout    time.Duration
	DBURL             string
	MaxStructureNodes int
	LogLevel          string
	LogFormat         string
}

// DefaultServerConfig returns configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:              "0.0.0.0",
		Port:              50061,
		MetricsAddr:       ":9090",
		RequestTimeout:    30 * time.Second,
		DBURL:             "sqlite://./data/ontologies.db",
		MaxStructureNodes: types.MaxStructureNodes,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// Addr returns the host:port the gRPC listener binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// HMACSecrets extracts API key signing secrets from the environment.
// ONTO_HMAC_SECRET holds the current secret; ONTO_HMAC_SECRET_1, _2, ...
// keep older secrets valid during rotation. Returns secret_id -> secret.
func HMACSecrets() (map[string][]byte, error) {
	secrets := make(map[string][]byte)

	add := func(name, val string) error {
		secretID, decoded, err := ParseHMACSecretWithID(val)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, exists := secrets[secretID]; exists {
			return fmt.Errorf("duplicate secret_id '%s' in %s (check %s and %s* for conflicts)", secretID, name, EnvHMACSecret, envHMACSecretPrefix)
		}
		secrets[secretID] = decoded
		return nil
	}

	if val := os.Getenv(EnvHMACSecret); val != "" {
		if err := add(EnvHMACSecret, val); err != nil {
			return nil, err
		}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", envHMACSecretPrefix, i)
		val := os.Getenv(name)
		if val == "" {
			break
		}
		if err := add(name, val); err != nil {
			return nil, err
		}
	}

	return secrets, nil
}

// PrimaryHMACSecret returns the secret new API keys are signed with, taken
// from ONTO_HMAC_SECRET.
func PrimaryHMACSecret() (secretID string, secret []byte, err error) {
	val := os.Getenv(EnvHMACSecret)
	if val == "" {
		return "", nil, fmt.Errorf("%s is not set", EnvHMACSecret)
	}
	secretID, secret, err = ParseHMACSecretWithID(val)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", EnvHMACSecret, err)
	}
	return secretID, secret, nil
}

// ParseHMACSecretWithID parses the <secret_id>:<base64_secret> format.
// The secret id is 32 lowercase hex chars (a UUIDv7 without hyphens) and the
// decoded secret must be at least 32 bytes.
func ParseHMACSecretWithID(envValue string) (secretID string, secret []byte, err error) {
	id, encoded, ok := strings.Cut(strings.TrimSpace(envValue), ":")
	if !ok {
		return "", nil, fmt.Errorf("format must be <secret_id>:<base64_secret>")
	}

	if len(id) != 32 {
		return "", nil, fmt.Errorf("secret_id must be 32 hex chars (UUIDv7 without hyphens)")
	}
	if _, err := hex.DecodeString(id); err != nil || strings.ToLower(id) != id {
		return "", nil, fmt.Errorf("secret_id must be lowercase hex chars only")
	}

	secret, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(secret) < 32 {
		return "", nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(secret))
	}

	return id, secret, nil
}
