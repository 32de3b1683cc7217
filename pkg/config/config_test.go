package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"member_id": "s1",
		"address": "localhost:8101",
		"registry": {"address": "localhost:8100", "create": true},
		"peers": ["s2", "s3"],
		"peer_call_timeout_ms": 2000
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "s1", cfg.MemberID)
	assert.Equal(t, "localhost:8101", cfg.Address)
	assert.Equal(t, "localhost:8100", cfg.Registry.Address)
	assert.True(t, cfg.Registry.Create)
	assert.Equal(t, []string{"s2", "s3"}, cfg.Peers)

	// Omitted interval falls back, explicit timeout sticks.
	assert.Equal(t, 500*time.Millisecond, cfg.LookupInterval())
	assert.Equal(t, 2*time.Second, cfg.PeerCallTimeout())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.json")
	assert.Error(t, err)
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFAB_MEMBER_ID", "s2")
	t.Setenv("CONFAB_ADDRESS", "localhost:8102")
	t.Setenv("CONFAB_REGISTRY_ADDRESS", "localhost:8100")
	t.Setenv("CONFAB_PEERS", "s1, s3,")
	t.Setenv("CONFAB_LOOKUP_INTERVAL_MS", "250")

	cfg := LoadFromEnv()

	assert.Equal(t, "s2", cfg.MemberID)
	assert.Equal(t, "localhost:8102", cfg.Address)
	assert.Equal(t, []string{"s1", "s3"}, cfg.Peers)
	assert.Equal(t, 250*time.Millisecond, cfg.LookupInterval())
	assert.Equal(t, 5*time.Second, cfg.PeerCallTimeout())
}

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, ":8101", cfg.Address)
	assert.Equal(t, "localhost:8100", cfg.Registry.Address)
	assert.False(t, cfg.Registry.Create)
	assert.Empty(t, cfg.Peers)
	assert.Equal(t, 500*time.Millisecond, cfg.LookupInterval())
}
