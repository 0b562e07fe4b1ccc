package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "SORTVIZ_"

// LoadDotEnv loads dir/.env without replacing variables that are already
// set, then dir/.env.local, which does replace them. Missing files are ignored.
func LoadDotEnv(dir string) error {
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	if err := godotenv.Load(base); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", base, err)
	}
	if err := godotenv.Overload(local); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", local, err)
	}
	return nil
}

// ApplyEnv overrides c from SORTVIZ_* variables found through lookup
// (usually os.LookupEnv). Unparsable numbers are reported, not skipped.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	getInt := func(key string, dst *int) error {
		s, ok := get(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalid, envPrefix, key, s)
		}
		*dst = n
		return nil
	}

	if err := getInt("SIZE", &c.Size); err != nil {
		return err
	}
	if err := getInt("HEIGHT", &c.Height); err != nil {
		return err
	}
	if err := getInt("SPEED", &c.Speed); err != nil {
		return err
	}
	if s, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q", ErrInvalid, envPrefix, s)
		}
		c.Seed = n
	}
	if s, ok := get("UNIT"); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: %sUNIT=%q", ErrInvalid, envPrefix, s)
		}
		c.Unit = d
	}
	if s, ok := get("PATTERN"); ok {
		c.Pattern = s
	}
	if s, ok := get("THEME"); ok {
		c.Theme = s
	}
	return nil
}
