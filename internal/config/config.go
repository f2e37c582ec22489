package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "FLASHDECK"

type Config struct {
	Env          string `mapstructure:"env" validate:"oneof=development production"`
	DB           string `mapstructure:"db"`
	User         string `mapstructure:"user" validate:"required"`
	LogFile      string `mapstructure:"log_file" validate:"required"`
	LogLevel     string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	PersistQueue int    `mapstructure:"persist_queue" validate:"min=1,max=4096"`
}

// Options controls where Init looks for a config file.
type Options struct {
	// File is an explicit config file path. When empty, config.yaml is looked
	// up in $XDG_CONFIG_HOME/flashdeck and is optional.
	File string
}

var validate = validator.New()

// Init loads configuration from defaults, an optional YAML file and
// FLASHDECK_* environment variables, in increasing priority.
func Init(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("db", "")
	v.SetDefault("user", "local")
	v.SetDefault("log_file", DefaultLogFile())
	v.SetDefault("log_level", "info")
	v.SetDefault("persist_queue", 64)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"env", "db", "user", "log_file", "log_level", "persist_queue"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s_%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateStruct checks the validate tags of s.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		var errMsgs []string
		for _, fe := range verrs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				"Field: %s, Tag: %s, Param: %s", fe.Field(), fe.Tag(), fe.Param(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "flashdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flashdeck")
}

// DefaultLogFile returns $XDG_STATE_HOME/flashdeck/flashdeck.log, falling back
// to ~/.local/state.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "-"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "flashdeck", "flashdeck.log")
}
