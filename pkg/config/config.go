package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLookupIntervalMs  = 500
	DefaultPeerCallTimeoutMs = 5000
)

type Config struct {
	// MemberID is the name this server binds in the naming directory.
	MemberID string `json:"member_id"`
	Address  string `json:"address"`

	Registry RegistryConfig `json:"registry"`

	// Peers lists the binding names of the other servers. The set is fixed
	// at startup; its order fixes the iteration order of the two-phase
	// registration protocol.
	Peers []string `json:"peers"`

	LookupIntervalMs  int `json:"lookup_interval_ms,omitempty"`
	PeerCallTimeoutMs int `json:"peer_call_timeout_ms,omitempty"`
}

type RegistryConfig struct {
	Address string `json:"address"`
	// Create indicates this process hosts the naming directory instead of
	// joining an existing one.
	Create bool `json:"create"`
}

func (c *Config) LookupInterval() time.Duration {
	return time.Duration(c.LookupIntervalMs) * time.Millisecond
}

func (c *Config) PeerCallTimeout() time.Duration {
	return time.Duration(c.PeerCallTimeoutMs) * time.Millisecond
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func LoadFromEnv() *Config {
	cfg := &Config{
		MemberID: getEnv("CONFAB_MEMBER_ID", ""),
		Address:  getEnv("CONFAB_ADDRESS", ":8101"),
		Registry: RegistryConfig{
			Address: getEnv("CONFAB_REGISTRY_ADDRESS", "localhost:8100"),
			Create:  getEnv("CONFAB_CREATE_REGISTRY", "false") == "true",
		},
	}

	if peers := os.Getenv("CONFAB_PEERS"); peers != "" {
		// Comma-separated peer names: s2,s3
		for _, p := range strings.Split(peers, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Peers = append(cfg.Peers, p)
			}
		}
	}

	if v := os.Getenv("CONFAB_LOOKUP_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LookupIntervalMs = n
		}
	}
	if v := os.Getenv("CONFAB_PEER_CALL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PeerCallTimeoutMs = n
		}
	}

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LookupIntervalMs <= 0 {
		c.LookupIntervalMs = DefaultLookupIntervalMs
	}
	if c.PeerCallTimeoutMs <= 0 {
		c.PeerCallTimeoutMs = DefaultPeerCallTimeoutMs
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
