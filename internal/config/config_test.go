package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp переходит во временный каталог, чтобы .env из рабочей директории не влиял на тест.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Empty(t, cfg.GRPCAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ModeMemory, cfg.Mode)
}

func TestLoad_Mode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"memory", nil, ModeMemory},
		{"sqlite", []string{"-s", "links.db"}, ModeSQLite},
		{"database", []string{"-d", "postgres://localhost/brevly"}, ModeDatabase},
		{"database wins over sqlite", []string{"-s", "links.db", "-d", "postgres://localhost/brevly"}, ModeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)

			cfg, err := Load(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}
}

func TestLoad_Priority(t *testing.T) {
	dir := chdirTemp(t)

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"server_address": "json:1",
		"grpc_address": "json:2",
		"sqlite_path": "json.db",
		"log_level": "warn"
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GRPC_ADDRESS=dotenv:2\nSQLITE_PATH=dotenv.db\n"), 0o644))
	t.Setenv("SQLITE_PATH", "env.db")

	cfg, err := Load([]string{"-c", jsonPath, "-a", "flag:1"})
	require.NoError(t, err)

	assert.Equal(t, "flag:1", cfg.ServerAddress)
	assert.Equal(t, "dotenv:2", cfg.GRPCAddress)
	assert.Equal(t, "env.db", cfg.SQLitePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ModeSQLite, cfg.Mode)
}

func TestLoad_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:3333")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3333", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Errors(t *testing.T) {
	chdirTemp(t)

	_, err := Load([]string{"-c", "missing.json"})
	assert.Error(t, err)

	_, err = Load([]string{"-unknown"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{ServerAddress: ":8080", LogLevel: "info", ShutdownTimeout: time.Second}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty address", func(c *Config) { c.ServerAddress = "" }},
		{"same grpc address", func(c *Config) { c.GRPCAddress = ":8080" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
