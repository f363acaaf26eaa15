// Package config resolves the numeric buckets that field attributes like
// max_chars and bag_size refer to symbolically (spec §4.6), the same way
// the teacher's CLI layer resolves runtime settings: environment variables
// via viper, decoded into a typed struct via mapstructure, with a zap warning
// when a config file can't be read or the settings can't be decoded.
package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Limits holds the absolute sizes behind every symbolic max_chars/bag_size
// bucket a field attribute can name.
type Limits struct {
	MaxChars MaxCharsLimits `mapstructure:"max_chars"`
	BagSize  BagSizeLimits  `mapstructure:"bag_size"`
}

// MaxCharsLimits is the max_chars bucket table (spec §4.6).
type MaxCharsLimits struct {
	Symbol    int `mapstructure:"symbol"`
	ShortPath int `mapstructure:"short_path"`
	Path      int `mapstructure:"path"`
	Summary   int `mapstructure:"summary"`
	EnumLike  int `mapstructure:"enumlike"`
}

// BagSizeLimits is the bag_size bucket table (spec §4.6).
type BagSizeLimits struct {
	Small  int `mapstructure:"small"`
	Medium int `mapstructure:"medium"`
	Large  int `mapstructure:"large"`
}

// DefaultLimits are the built-in bucket sizes used whenever no override is
// configured. They're ordered to match how these buckets are used in
// practice — a symbol is shorter than a path, a small databag holds less
// than a large one.
func DefaultLimits() Limits {
	return Limits{
		MaxChars: MaxCharsLimits{
			Symbol:    256,
			ShortPath: 256,
			Path:      4096,
			Summary:   1024,
			EnumLike:  64,
		},
		BagSize: BagSizeLimits{
			Small:  1 << 12,  // 4 KiB
			Medium: 1 << 14,  // 16 KiB
			Large:  1 << 16,  // 64 KiB
		},
	}
}

// Load resolves Limits from the environment (prefix INGEST_, e.g.
// INGEST_MAX_CHARS_PATH) and an optional config file, falling back to
// DefaultLimits for anything left unset. logger may be nil, in which case
// a default production zap logger is built at the start of the call for the
// fallback warnings.
func Load(configFile string, logger *zap.Logger) (Limits, error) {
	if logger == nil {
		l, err := newDefaultLogger()
		if err != nil {
			return Limits{}, err
		}
		logger = l
	}

	v := viper.New()
	v.SetEnvPrefix("INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLimits()
	setDefaults(v, "max_chars", defaults.MaxChars)
	setDefaults(v, "bag_size", defaults.BagSize)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("falling back to default limits: config file unreadable",
				zap.String("file", configFile), zap.Error(err))
		}
	}

	var limits Limits
	if err := v.Unmarshal(&limits, func(c *mapstructure.DecoderConfig) {
		c.TagName = "mapstructure"
	}); err != nil {
		logger.Warn("falling back to default limits: decode failed", zap.Error(err))
		return defaults, nil
	}
	return limits, nil
}

func setDefaults(v *viper.Viper, prefix string, bucket interface{}) {
	m := map[string]interface{}{}
	_ = mapstructure.Decode(bucket, &m)
	for k, val := range m {
		v.SetDefault(prefix+"."+k, val)
	}
}

func newDefaultLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}
