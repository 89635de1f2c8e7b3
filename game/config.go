package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvLevel = "CAKEWALK_LEVEL"
	EnvDebug = "CAKEWALK_DEBUG"
	EnvTrace = "CAKEWALK_TRACE"
	EnvScale = "CAKEWALK_SCALE"
)

// Config holds launcher settings.
type Config struct {
	Level     string  // embedded level name
	Debug     bool    // world debug logging and hitbox overlay
	TracePath string  // write a msgpack trace here on exit; empty disables
	Scale     float64 // window scale
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{Level: "meadow", Scale: 2}
}

// LoadConfig loads the given .env files (".env" when none are named) into
// the process environment, then reads the CAKEWALK_* variables. Missing
// files are ignored; variables already set in the environment win.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", f, err)
		}
	}
	return configFromEnv(os.LookupEnv)
}

func configFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvLevel); ok && v != "" {
		cfg.Level = v
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %s: %w", EnvDebug, err)
		}
		cfg.Debug = b
	}
	if v, ok := lookup(EnvTrace); ok {
		cfg.TracePath = v
	}
	if v, ok := lookup(EnvScale); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %s: %w", EnvScale, err)
		}
		if f <= 0 {
			return Config{}, fmt.Errorf("load config: %s must be positive, got %v", EnvScale, f)
		}
		cfg.Scale = f
	}
	return cfg, nil
}
