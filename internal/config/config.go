// Package config resolves pngbench settings from flags, environment
// variables, an optional config file and a .env file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pngbench/internal/logging"
)

const (
	DefaultDecodeRuns = 5
	DefaultEncodeRuns = 3
	// DefaultMaxPixels bounds the guarded decoder: 16384x16384.
	DefaultMaxPixels = 1 << 28
	DefaultFormat    = "text"
	DefaultLogLevel  = "info"

	// ExternalLibEnv names the shared object providing the external decoder.
	ExternalLibEnv = "EXTERNAL_LIB"

	envPrefix = "PNGBENCH"
)

const (
	keyDecodeRuns  = "decode_runs"
	keyEncodeRuns  = "encode_runs"
	keyExternalLib = "external_lib"
	keyFormat      = "format"
	keyMaxPixels   = "max_pixels"
	keyLogLevel    = "log_level"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DecodeRuns  int
	EncodeRuns  int
	ExternalLib string
	// ExternalLibSet reports whether EXTERNAL_LIB is present, even when empty.
	ExternalLibSet bool
	Format         string
	MaxPixels      int64
	LogLevel       string
}

// BindFlags registers the pngbench flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (toml, yaml or json)")
	fs.Int("decode-runs", DefaultDecodeRuns, "decode runs per implementation; the best run is reported")
	fs.Int("encode-runs", DefaultEncodeRuns, "encode runs per implementation; the best run is reported")
	fs.String("format", DefaultFormat, "report format: text, json or prometheus")
	fs.Int64("max-pixels", DefaultMaxPixels, "largest image the guarded decoder accepts")
	fs.String("log-level", DefaultLogLevel, "diagnostic log level: debug, info, warn or error")
}

// Load reads the configuration into v. fs must have been prepared with BindFlags.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	v.SetDefault(keyDecodeRuns, DefaultDecodeRuns)
	v.SetDefault(keyEncodeRuns, DefaultEncodeRuns)
	v.SetDefault(keyFormat, DefaultFormat)
	v.SetDefault(keyMaxPixels, DefaultMaxPixels)
	v.SetDefault(keyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyExternalLib, ExternalLibEnv); err != nil {
		return nil, fmt.Errorf("could not bind %s: %w", ExternalLibEnv, err)
	}

	for key, flag := range map[string]string{
		keyDecodeRuns: "decode-runs",
		keyEncodeRuns: "encode-runs",
		keyFormat:     "format",
		keyMaxPixels:  "max-pixels",
		keyLogLevel:   "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("could not bind flag --%s: %w", flag, err)
		}
	}

	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", f.Value.String(), err)
		}
	}

	cfg := &Config{
		DecodeRuns:  v.GetInt(keyDecodeRuns),
		EncodeRuns:  v.GetInt(keyEncodeRuns),
		ExternalLib: v.GetString(keyExternalLib),
		Format:      strings.ToLower(v.GetString(keyFormat)),
		MaxPixels:   v.GetInt64(keyMaxPixels),
		LogLevel:    v.GetString(keyLogLevel),
	}
	_, inEnv := os.LookupEnv(ExternalLibEnv)
	cfg.ExternalLibSet = inEnv || v.IsSet(keyExternalLib)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DecodeRuns < 1 {
		return fmt.Errorf("%w: decode runs must be at least 1, got %d", ErrInvalid, c.DecodeRuns)
	}
	if c.EncodeRuns < 1 {
		return fmt.Errorf("%w: encode runs must be at least 1, got %d", ErrInvalid, c.EncodeRuns)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("%w: max pixels must be positive, got %d", ErrInvalid, c.MaxPixels)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
