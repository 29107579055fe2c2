package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shidetake/sinetable/internal/table"
)

type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Preview PreviewConfig `mapstructure:"preview"`
	Log     LogConfig     `mapstructure:"log"`
}

type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Legacy bool   `mapstructure:"legacy"` // "<value> ," lines
}

// PreviewConfig controls the optional WAV rendering. An empty Path disables it.
type PreviewConfig struct {
	Path    string  `mapstructure:"path"`
	Seconds float64 `mapstructure:"seconds"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Flags      *pflag.FlagSet
	ConfigFile string
	Defaults   Config
}

func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Path: table.DefaultFileName,
		},
		Preview: PreviewConfig{
			Seconds: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Style maps the output settings onto a header line style.
func (c Config) Style() table.Style {
	if c.Output.Legacy {
		return table.StyleLegacy
	}
	return table.StyleCompact
}

func (c Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.Preview.Path != "" && c.Preview.Seconds <= 0 {
		return fmt.Errorf("preview length must be positive, got %g", c.Preview.Seconds)
	}
	return nil
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringP("output", "o", defaults.Output.Path, "Header file to write")
	fs.Bool("legacy", defaults.Output.Legacy, `Write "<value> ," lines (older generator layout)`)
	fs.String("wav", defaults.Preview.Path, "Also render the table looped at the playback rate into this WAV file")
	fs.Float64("wav-seconds", defaults.Preview.Seconds, "Length of the WAV preview in seconds")
	fs.String("log-level", defaults.Log.Level, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("SINETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("sinetable")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("output.path", c.Output.Path)
	v.SetDefault("output.legacy", c.Output.Legacy)
	v.SetDefault("preview.path", c.Preview.Path)
	v.SetDefault("preview.seconds", c.Preview.Seconds)
	v.SetDefault("log.level", c.Log.Level)
}

// flagKeys maps command line flags onto nested config keys.
var flagKeys = map[string]string{
	"output":      "output.path",
	"legacy":      "output.legacy",
	"wav":         "preview.path",
	"wav-seconds": "preview.seconds",
	"log-level":   "log.level",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
