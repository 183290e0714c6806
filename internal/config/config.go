package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

const fileName = ".enrichdashrc"

// Keys in the rc file and the environment.
const (
	KeyPoints   = "ENRICHDASH_POINTS"
	KeySeed     = "ENRICHDASH_SEED"
	KeyData     = "ENRICHDASH_DATA"
	KeyPageSize = "ENRICHDASH_PAGE_SIZE"
	KeyAddr     = "ENRICHDASH_ADDR"
	KeyLogLevel = "ENRICHDASH_LOG_LEVEL"
	KeyXScale   = "ENRICHDASH_X_SCALE"
	KeyYScale   = "ENRICHDASH_Y_SCALE"
	KeyRPS      = "ENRICHDASH_RPS"
)

// ErrInvalidValue is returned when a numeric key cannot be parsed.
var ErrInvalidValue = zerr.New("invalid config value")

// Config holds dashboard settings.
type Config struct {
	Points   int
	Seed     int64
	DataPath string
	PageSize int
	Addr     string
	LogLevel string
	XScale   string
	YScale   string
	RPS      float64
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Points:   1000,
		Seed:     42,
		PageSize: 20,
		Addr:     ":8050",
		LogLevel: "warn",
		XScale:   "linear",
		YScale:   "linear",
		RPS:      50,
	}
}

// DefaultPath returns ~/.enrichdashrc, or the file name alone when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return fileName
	}
	return filepath.Join(home, fileName)
}

// Load reads KEY=VALUE lines from path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	values := map[string]string{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		values = parse(data)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, zerr.With(zerr.Wrap(err, "read config"), "path", path)
	}
	for _, k := range keys() {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}
	if err := cfg.apply(values); err != nil {
		return cfg, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func keys() []string {
	return []string{KeyPoints, KeySeed, KeyData, KeyPageSize, KeyAddr, KeyLogLevel, KeyXScale, KeyYScale, KeyRPS}
}

func parse(data []byte) map[string]string {
	out := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

func (c *Config) apply(values map[string]string) error {
	for k, v := range values {
		var err error
		switch k {
		case KeyPoints:
			c.Points, err = strconv.Atoi(v)
		case KeySeed:
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case KeyPageSize:
			c.PageSize, err = strconv.Atoi(v)
		case KeyRPS:
			c.RPS, err = strconv.ParseFloat(v, 64)
		case KeyData:
			c.DataPath = v
		case KeyAddr:
			c.Addr = v
		case KeyLogLevel:
			c.LogLevel = v
		case KeyXScale:
			c.XScale = v
		case KeyYScale:
			c.YScale = v
		}
		if err != nil {
			return zerr.With(ErrInvalidValue, "key", k)
		}
	}
	if c.Points < 0 {
		return zerr.With(ErrInvalidValue, "key", KeyPoints)
	}
	if c.PageSize <= 0 {
		return zerr.With(ErrInvalidValue, "key", KeyPageSize)
	}
	return nil
}

// Encode renders cfg in the rc file format.
func Encode(cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%d\n", KeyPoints, cfg.Points)
	fmt.Fprintf(&b, "%s=%d\n", KeySeed, cfg.Seed)
	if cfg.DataPath != "" {
		fmt.Fprintf(&b, "%s=%s\n", KeyData, cfg.DataPath)
	}
	fmt.Fprintf(&b, "%s=%d\n", KeyPageSize, cfg.PageSize)
	fmt.Fprintf(&b, "%s=%s\n", KeyAddr, cfg.Addr)
	fmt.Fprintf(&b, "%s=%s\n", KeyLogLevel, cfg.LogLevel)
	fmt.Fprintf(&b, "%s=%s\n", KeyXScale, cfg.XScale)
	fmt.Fprintf(&b, "%s=%s\n", KeyYScale, cfg.YScale)
	fmt.Fprintf(&b, "%s=%s\n", KeyRPS, strconv.FormatFloat(cfg.RPS, 'g', -1, 64))
	return b.String()
}

// Save writes cfg to path with 0600 permissions.
func Save(path string, cfg Config) error {
	if err := os.WriteFile(path, []byte(Encode(cfg)), 0o600); err != nil {
		return zerr.With(zerr.Wrap(err, "write config"), "path", path)
	}
	return nil
}
