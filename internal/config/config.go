package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "VIDGRAB"

// Config holds the runtime configuration of the client.
type Config struct {
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Poll    PollConfig    `mapstructure:"poll" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage"`
}

// BackendConfig points at the remote processing service.
type BackendConfig struct {
	URL            string        `mapstructure:"url" validate:"required,url"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ProbeInterval  time.Duration `mapstructure:"probe_interval" validate:"gte=0"`
}

// PollConfig controls the task poller and the automatic reset after success.
type PollConfig struct {
	Interval   time.Duration `mapstructure:"interval" validate:"gt=0"`
	ResetDelay time.Duration `mapstructure:"reset_delay" validate:"gt=0"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig locates the SQLite store used by the headless client.
// An empty DataDir means the user config directory.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Defaults
const (
	DefaultBackendURL     = "http://127.0.0.1:8000"
	DefaultProbeTimeout   = 8 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultProbeInterval  = 30 * time.Second
	DefaultPollInterval   = time.Second
	DefaultResetDelay     = 4 * time.Second
	DefaultLogLevel       = "info"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", DefaultBackendURL)
	v.SetDefault("backend.probe_timeout", DefaultProbeTimeout)
	v.SetDefault("backend.request_timeout", DefaultRequestTimeout)
	v.SetDefault("backend.probe_interval", DefaultProbeInterval)
	v.SetDefault("poll.interval", DefaultPollInterval)
	v.SetDefault("poll.reset_delay", DefaultResetDelay)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("storage.data_dir", "")
}

// Load reads configuration from defaults, the optional file at path and
// VIDGRAB_* environment variables, in increasing order of precedence.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
