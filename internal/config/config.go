// Package config loads sorter settings from defaults, an optional YAML file
// and SORTER_* environment variables.
//
// Sorting thresholds are constants in package sorting and are deliberately
// absent here.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SORTER_LOG_LEVEL
const EnvPrefix = "SORTER"

// Config contains all sorter settings.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DecisionLog DecisionLogConfig `mapstructure:"decision_log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	EnableDebug     bool          `mapstructure:"enable_debug"`

	// TLS is enabled when both files are set.
	TLSCertFile string `mapstructure:"tls_cert_file" validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `mapstructure:"tls_key_file" validate:"required_with=TLSCertFile"`
}

// TLSEnabled reports whether the server should serve HTTPS
func (s ServerConfig) TLSEnabled() bool {
	return s.TLSCertFile != "" && s.TLSKeyFile != ""
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// DecisionLogConfig configures the JSONL audit trail of sorting decisions.
type DecisionLogConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Dir      string `mapstructure:"dir" validate:"required_if=Enabled true"`
	FileName string `mapstructure:"file_name" validate:"required_if=Enabled true"`
	Stdout   bool   `mapstructure:"stdout"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			EnableDebug:     false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		DecisionLog: DecisionLogConfig{
			Enabled:  true,
			Dir:      "logs",
			FileName: "decisions.jsonl",
		},
		Metrics: MetricsConfig{
			Namespace: "sorter",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	// PORT is honored for platforms that inject it
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.WithHint(
				errors.Newf("invalid config: %s", strings.Join(msgs, ", ")),
				"check the config file and SORTER_* environment variables",
			)
		}
		return errors.Wrap(err, "validating config")
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.enable_debug", d.Server.EnableDebug)
	v.SetDefault("server.tls_cert_file", d.Server.TLSCertFile)
	v.SetDefault("server.tls_key_file", d.Server.TLSKeyFile)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("decision_log.enabled", d.DecisionLog.Enabled)
	v.SetDefault("decision_log.dir", d.DecisionLog.Dir)
	v.SetDefault("decision_log.file_name", d.DecisionLog.FileName)
	v.SetDefault("decision_log.stdout", d.DecisionLog.Stdout)

	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
}
