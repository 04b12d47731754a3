package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LIFETIME_LOG_LEVEL.
const EnvPrefix = "LIFETIME"

// Settings are the application options that are not part of a scenario.
type Settings struct {
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"` // console or json
	ReportFormat    string `mapstructure:"report_format"`
	OutputDir       string `mapstructure:"output_dir"`
	RealDollars     bool   `mapstructure:"real_dollars"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
	SweepWorkers    int    `mapstructure:"sweep_workers"`
}

// SettingsLoader reads Settings from defaults, an optional settings file and
// the environment, in increasing order of precedence.
type SettingsLoader struct {
	// ConfigFile is an explicit settings file; when empty lifetime.yaml is
	// looked up in ConfigPaths.
	ConfigFile  string
	ConfigPaths []string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Missing files are skipped.
	EnvFiles []string
}

// NewSettingsLoader creates a loader that looks in the working directory.
func NewSettingsLoader(configFile string) *SettingsLoader {
	return &SettingsLoader{
		ConfigFile:  configFile,
		ConfigPaths: []string{"."},
		EnvFiles:    []string{".env"},
	}
}

// LoadSettings is shorthand for NewSettingsLoader(configFile).Load().
func LoadSettings(configFile string) (*Settings, error) {
	return NewSettingsLoader(configFile).Load()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("report_format", "console")
	v.SetDefault("output_dir", ".")
	v.SetDefault("real_dollars", false)
	v.SetDefault("metrics_textfile", "")
	v.SetDefault("sweep_workers", 10)
}

// Load resolves the settings.
func (sl *SettingsLoader) Load() (*Settings, error) {
	for _, path := range sl.EnvFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if sl.ConfigFile != "" {
		v.SetConfigFile(sl.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", sl.ConfigFile, err)
		}
	} else {
		v.SetConfigName("lifetime")
		v.SetConfigType("yaml")
		for _, p := range sl.ConfigPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks option values that have a fixed vocabulary.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", s.LogFormat)
	}
	if s.SweepWorkers < 1 {
		return fmt.Errorf("sweep workers must be positive, got %d", s.SweepWorkers)
	}
	return nil
}
