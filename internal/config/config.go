package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/triplefit/internal/dataset"
	"github.com/KaramelBytes/triplefit/internal/rating"
	"github.com/KaramelBytes/triplefit/internal/report"
)

const dirName = ".triplefit"

// Global configuration structure.
type Global struct {
	// Input is the default dataset path when none is given on the command line.
	Input      string            `mapstructure:"input" yaml:"input"`
	Format     string            `mapstructure:"format" yaml:"format"`
	Workers    int               `mapstructure:"workers" yaml:"workers"`
	PauseMs    int               `mapstructure:"pause_ms" yaml:"pause_ms"`
	Layout     dataset.Layout    `mapstructure:"layout" yaml:"layout"`
	Thresholds rating.Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
	Precision  report.Precision  `mapstructure:"precision" yaml:"precision"`
}

// Pause returns PauseMs as a duration.
func (c *Global) Pause() time.Duration {
	return time.Duration(c.PauseMs) * time.Millisecond
}

// Validate checks every section of the configuration.
func (c *Global) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: must be >= 1, got %d", c.Workers)
	}
	if c.PauseMs < 0 {
		return fmt.Errorf("invalid pause_ms: must be >= 0, got %d", c.PauseMs)
	}
	p := c.Precision
	if p.Decimal < 0 || p.Scientific < 0 || p.Error < 0 {
		return fmt.Errorf("invalid precision: digits must be >= 0")
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		Input:      filepath.Join("data", "dataset.csv"),
		Format:     string(report.FormatText),
		Workers:    1,
		Layout:     dataset.DefaultLayout(),
		Thresholds: rating.DefaultThresholds(),
		Precision:  report.DefaultPrecision(),
	}
}

// Path returns cfgFile, or ~/.triplefit/config.yaml when cfgFile is empty.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.triplefit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPLEFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("input", d.Input)
	v.SetDefault("format", d.Format)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("pause_ms", d.PauseMs)
	// Layout defaults
	v.SetDefault("layout.target_row", d.Layout.TargetRow)
	v.SetDefault("layout.data_start_row", d.Layout.DataStartRow)
	v.SetDefault("layout.sets", d.Layout.Sets)
	v.SetDefault("layout.column_step", d.Layout.ColumnStep)
	v.SetDefault("layout.sheet", d.Layout.Sheet)
	// Rating thresholds (percent)
	v.SetDefault("thresholds.exceptional", d.Thresholds.Exceptional)
	v.SetDefault("thresholds.superior", d.Thresholds.Superior)
	v.SetDefault("thresholds.satisfactory", d.Thresholds.Satisfactory)
	// Display precision
	v.SetDefault("precision.decimal", d.Precision.Decimal)
	v.SetDefault("precision.scientific", d.Precision.Scientific)
	v.SetDefault("precision.error", d.Precision.Error)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}
