package config

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "atelier.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, domain.DefaultMidpoint, cfg.Midpoint)
	assert.False(t, cfg.LogUseCases)
	assert.NotEmpty(t, cfg.TemplateDir)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{
		EnvDB:          ":memory:",
		EnvTemplates:   "/srv/templates",
		EnvMidpoint:    "6",
		EnvLogUseCases: "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, Config{DBPath: ":memory:", TemplateDir: "/srv/templates", Midpoint: 6, LogUseCases: true}, cfg)
}

func TestLoad_BlankValuesFallBack(t *testing.T) {
	cfg, err := Load(envMap(map[string]string{EnvDB: "  ", EnvMidpoint: ""}))
	require.NoError(t, err)
	assert.Equal(t, "atelier.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, domain.DefaultMidpoint, cfg.Midpoint)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	_, err := Load(envMap(map[string]string{EnvMidpoint: "five"}))
	assert.Error(t, err)

	_, err = Load(envMap(map[string]string{EnvMidpoint: "11"}))
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = Load(envMap(map[string]string{EnvLogUseCases: "sometimes"}))
	assert.Error(t, err)
}

func TestDefaultConfig_PrefersLocalTemplates(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := DefaultConfig("/home/dana")
	assert.Equal(t, filepath.Join("/home/dana", ".atelier", "templates"), cfg.TemplateDir)
	assert.Equal(t, filepath.Join("/home/dana", ".atelier", "atelier.db"), cfg.DBPath)
}
