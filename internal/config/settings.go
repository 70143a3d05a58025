package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are tool-level knobs for the stackforge CLI, as opposed to the
// per-project Config. They come from stackforge.yaml (current directory or
// ~/.config/stackforge) with STACKFORGE_* environment overrides.
type Settings struct {
	PackageManager string        // binary used to install dependencies
	GitBinary      string        // binary used for version-control init
	InstallTimeout time.Duration // wall-clock limit per install invocation
	DefaultPort    int           // port offered when the user doesn't pick one
}

// LoadSettings reads tool settings, falling back to defaults when no config
// file exists.
func LoadSettings() (Settings, error) {
	v := viper.New()
	v.SetConfigName("stackforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/stackforge")

	v.AutomaticEnv()
	v.SetEnvPrefix("STACKFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("package_manager", "npm")
	v.SetDefault("git_binary", "git")
	v.SetDefault("install_timeout", "5m")
	v.SetDefault("default_port", 3000)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("reading stackforge.yaml: %w", err)
		}
	}

	s := Settings{
		PackageManager: v.GetString("package_manager"),
		GitBinary:      v.GetString("git_binary"),
		InstallTimeout: v.GetDuration("install_timeout"),
		DefaultPort:    v.GetInt("default_port"),
	}

	if s.InstallTimeout <= 0 {
		return Settings{}, fmt.Errorf("install_timeout must be positive, got %s", s.InstallTimeout)
	}
	return s, nil
}
