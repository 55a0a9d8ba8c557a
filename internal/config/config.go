package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
)

// Environment variables read by Load.
const (
	EnvDB          = "ATELIER_DB"
	EnvTemplates   = "ATELIER_TEMPLATES"
	EnvMidpoint    = "ATELIER_MIDPOINT"
	EnvLogUseCases = "ATELIER_LOG_USE_CASES"
)

// LocalTemplateDir is preferred over the home template dir when it exists.
const LocalTemplateDir = "templates"

// Config holds process-wide settings.
type Config struct {
	DBPath      string
	TemplateDir string
	Midpoint    int
	LogUseCases bool
}

// DefaultConfig returns the settings used when no variables are set, rooted
// at home.
func DefaultConfig(home string) Config {
	templates := filepath.Join(home, ".atelier", "templates")
	if info, err := os.Stat(LocalTemplateDir); err == nil && info.IsDir() {
		templates = LocalTemplateDir
	}
	return Config{
		DBPath:      filepath.Join(home, ".atelier", "atelier.db"),
		TemplateDir: templates,
		Midpoint:    domain.DefaultMidpoint,
	}
}

// Load reads configuration through lookupEnv, usually os.LookupEnv, falling
// back to DefaultConfig for unset values. Malformed values are errors.
func Load(lookupEnv func(string) (string, bool)) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg := DefaultConfig(home)

	if v, ok := lookup(lookupEnv, EnvDB); ok {
		cfg.DBPath = v
	}
	if v, ok := lookup(lookupEnv, EnvTemplates); ok {
		cfg.TemplateDir = v
	}
	if v, ok := lookup(lookupEnv, EnvMidpoint); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMidpoint, err)
		}
		if err := domain.DefaultScale.Check(EnvMidpoint, n); err != nil {
			return Config{}, err
		}
		cfg.Midpoint = n
	}
	if v, ok := lookup(lookupEnv, EnvLogUseCases); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogUseCases, err)
		}
		cfg.LogUseCases = b
	}
	return cfg, nil
}

func lookup(lookupEnv func(string) (string, bool), key string) (string, bool) {
	v, ok := lookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
