package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const (
	testSecretID = "0123456789abcdef0123456789abcdef"
	testSecret   = testSecretID + ":dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w"
	otherSecret  = "fedcba9876543210fedcba9876543210:YW5vdGhlcnNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHMACSecrets(t *testing.T) {
	t.Run("single secret", func(t *testing.T) {
		t.Setenv("ONTO_HMAC_SECRET", testSecret)

		secrets, err := HMACSecrets()
		if err != nil {
			t.Fatalf("HMACSecrets failed: %v", err)
		}
		if len(secrets) != 1 {
			t.Errorf("expected 1 secret, got %d", len(secrets))
		}
		if _, ok := secrets[testSecretID]; !ok {
			t.Errorf("secret_id not found in map")
		}
	})

	t.Run("rotation secrets", func(t *testing.T) {
		t.Setenv("ONTO_HMAC_SECRET", "")
		t.Setenv("ONTO_HMAC_SECRET_1", testSecret)
		t.Setenv("ONTO_HMAC_SECRET_2", otherSecret)

		secrets, err := HMACSecrets()
		if err != nil {
			t.Fatalf("HMACSecrets failed: %v", err)
		}
		if len(secrets) != 2 {
			t.Errorf("expected 2 secrets, got %d", len(secrets))
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("ONTO_HMAC_SECRET", "invalid_format")

		if _, err := HMACSecrets(); err == nil {
			t.Error("expected error for invalid format")
		}
	})

	t.Run("duplicate secret_id between single and numbered", func(t *testing.T) {
		t.Setenv("ONTO_HMAC_SECRET", testSecret)
		t.Setenv("ONTO_HMAC_SECRET_1", testSecretID+":YW5vdGhlcnNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w")

		if _, err := HMACSecrets(); err == nil {
			t.Error("expected error for duplicate secret_id")
		}
	})
}

func TestParseHMACSecretWithID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", testSecret, false},
		{"missing colon", testSecretID, true},
		{"short id", "tooshort:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", true},
		{"non-hex id", "0123456789abcdefGHIJKLMNOPQRSTUV:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", true},
		{"uppercase id", "0123456789ABCDEF0123456789ABCDEF:dGVzdHNlY3JldDEyMzQ1Njc4OTBhYmNkZWZnaGlqa2xtbm9w", true},
		{"invalid base64", testSecretID + ":not-valid-base64!!!", true},
		{"secret too short", testSecretID + ":c2hvcnQ=", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, secret, err := ParseHMACSecretWithID(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHMACSecretWithID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (id != testSecretID || len(secret) < 32) {
				t.Errorf("ParseHMACSecretWithID() = %q, %d bytes", id, len(secret))
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("", nil)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		def := DefaultServerConfig()
		if cfg.Host != def.Host || cfg.Port != def.Port {
			t.Errorf("addr = %s, want %s", cfg.Addr(), def.Addr())
		}
		if cfg.RequestTimeout != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", cfg.RequestTimeout)
		}
		if cfg.DBURL != def.DBURL {
			t.Errorf("expected db_url %s, got %s", def.DBURL, cfg.DBURL)
		}
		if cfg.MaxStructureNodes != def.MaxStructureNodes {
			t.Errorf("expected max_structure_nodes %d, got %d", def.MaxStructureNodes, cfg.MaxStructureNodes)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("ONTO_SERVER_PORT", "9999")
		t.Setenv("ONTO_SERVER_DB_URL", "postgres://localhost/onto")

		cfg, err := LoadConfig("", nil)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Port != 9999 {
			t.Errorf("expected port 9999, got %d", cfg.Port)
		}
		if cfg.DBURL != "postgres://localhost/onto" {
			t.Errorf("expected postgres url, got %s", cfg.DBURL)
		}
	})

	t.Run("invalid port range", func(t *testing.T) {
		t.Setenv("ONTO_SERVER_PORT", "70000")

		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for port > 65535")
		}
	})

	t.Run("invalid node limit", func(t *testing.T) {
		t.Setenv("ONTO_SERVER_MAX_STRUCTURE_NODES", "0")

		if _, err := LoadConfig("", nil); err == nil {
			t.Error("expected error for non-positive max_structure_nodes")
		}
	})

	t.Run("secret in config file rejected", func(t *testing.T) {
		path := writeConfig(t, "server:\n  host: localhost\n  hmac_secret: should_be_rejected\n")

		_, err := LoadConfig(path, nil)
		if err == nil {
			t.Fatal("expected error for secret in config file")
		}
		if err.Error() != "HMAC secrets not allowed in config files (use ONTO_HMAC_SECRET environment variable)" {
			t.Fatalf("wrong error message: %v", err)
		}
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 7070\n  host: 10.0.0.1\nlog:\n  level: debug\n")

	cfg, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != 7070 || cfg.LogLevel != "debug" {
		t.Errorf("config file ignored: port %d level %s", cfg.Port, cfg.LogLevel)
	}

	t.Setenv("ONTO_SERVER_PORT", "8080")
	cfg, err = LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("environment should override config file, got port %d", cfg.Port)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--port=6060"}); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path, flags)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != 6060 {
		t.Errorf("flag should override environment, got port %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("unset flag should not override config file, got level %s", cfg.LogLevel)
	}
	if cfg.Host != "10.0.0.1" {
		t.Errorf("expected host from config file, got %s", cfg.Host)
	}
}

func TestPrimaryHMACSecret(t *testing.T) {
	t.Setenv("ONTO_HMAC_SECRET", "")
	if _, _, err := PrimaryHMACSecret(); err == nil {
		t.Error("expected error when ONTO_HMAC_SECRET is unset")
	}

	t.Setenv("ONTO_HMAC_SECRET", testSecret)
	id, secret, err := PrimaryHMACSecret()
	if err != nil {
		t.Fatalf("PrimaryHMACSecret failed: %v", err)
	}
	if id != testSecretID || len(secret) < 32 {
		t.Errorf("PrimaryHMACSecret() = %q, %d bytes", id, len(secret))
	}
}
