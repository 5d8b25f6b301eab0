// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// demoConfig holds scriptdemo's optional on-disk defaults:
// flags override config file values, which override the zero-value
// defaults below.
type demoConfig struct {
	Shell         string `mapstructure:"shell"`
	Verbose       bool   `mapstructure:"verbose"`
	GlobOnWindows bool   `mapstructure:"glob_on_windows"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{Shell: "", Verbose: false, GlobOnWindows: false}
}

// loadDemoConfig reads scriptdemo.{yaml,toml,json} from the current
// directory or $XDG_CONFIG_HOME/scriptdemo, falling back silently to
// defaults when no file is present — scriptcore's own core takes no
// persisted configuration at all; this is purely a
// convenience for the demo binary.
func loadDemoConfig(explicitPath string) (demoConfig, error) {
	v := viper.New()
	defaults := defaultDemoConfig()
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("glob_on_windows", defaults.GlobOnWindows)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("scriptdemo")
		v.AddConfigPath(".")
		if cfgHome, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(cfgHome, "scriptdemo"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && explicitPath != "" {
			return demoConfig{}, fmt.Errorf("scriptdemo: read config: %w", err)
		}
	}

	var cfg demoConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return demoConfig{}, fmt.Errorf("scriptdemo: parse config: %w", err)
	}
	return cfg, nil
}
