package apierrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultNonFieldKey is the field name that marks reasons as non-field
// errors, routing them to the payload detail list.
const DefaultNonFieldKey = "non_field_errors"

// Config holds the formatter settings. It is read once at process start and
// never mutated afterwards, so a single Formatter is safe for concurrent
// use.
type Config struct {
	// Camelize converts field-path segments and the invalid_params output
	// key to camelCase.
	Camelize bool `mapstructure:"camelize"`

	// ExtraHandlers names registered handlers to try, in order, before the
	// builtin ones. Unknown names fail at startup.
	ExtraHandlers []string `mapstructure:"extra_handlers"`

	// FieldsSeparator joins nested field names into flat paths. Must be a
	// single character. Defaults to ".".
	FieldsSeparator string `mapstructure:"fields_separator"`

	// NonFieldKey is the field name holding non-field errors. The legacy
	// "__all__" key is always recognized as well.
	NonFieldKey string `mapstructure:"non_field_key"`
}

// DefaultConfig returns the documented defaults: no camelizing, no extra
// handlers, "." as the separator.
func DefaultConfig() Config {
	return Config{
		FieldsSeparator: ".",
		NonFieldKey:     DefaultNonFieldKey,
	}
}

func (c Config) withDefaults() Config {
	if c.FieldsSeparator == "" {
		c.FieldsSeparator = "."
	}
	if c.NonFieldKey == "" {
		c.NonFieldKey = DefaultNonFieldKey
	}
	return c
}

func (c Config) validate() error {
	if len(c.FieldsSeparator) != 1 {
		return fmt.Errorf("apierrors: fields_separator must be a single character, got %q", c.FieldsSeparator)
	}
	return nil
}

// LoadConfig reads the "apierrors" settings block using viper. Values come
// from an optional config file (apierrors.yaml, .json or .toml in the
// current directory) and from APIERRORS_* environment variables, with
// defaults applied for anything unset. The result is validated; handler
// name resolution happens later in New so operators still fail fast at
// startup.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("apierrors")
	v.AddConfigPath(".")
	v.SetEnvPrefix("APIERRORS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("camelize", false)
	v.SetDefault("extra_handlers", []string{})
	v.SetDefault("fields_separator", ".")
	v.SetDefault("non_field_key", DefaultNonFieldKey)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("apierrors: reading config: %w", err)
		}
	}

	cfg := DefaultConfig()
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("apierrors: decoding config: %w", err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
