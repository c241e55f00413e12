// SPDX-License-Identifier: MIT

// Config loading for the triarith CLI.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

const (
	configFileName = "triarith"
	configFileType = "yaml"
	envPrefix      = "TRIARITH"

	cfgKeyBackendPriority = "backend_priority"
	cfgKeyWorkers         = "workers"
	cfgKeyLogLevel        = "log_level"
)

// loadConfig resolves configuration with precedence flags > TRIARITH_*
// environment > config file > defaults. An explicit path must exist; the
// searched triarith.yaml is optional.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackendPriority, []string{"sparse", "dense"})
	v.SetDefault(cfgKeyWorkers, 1)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/triarith")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// engineOptions turns resolved configuration into Engine options.
func engineOptions(v *viper.Viper) ([]triangle.Option, error) {
	var opts []triangle.Option

	names := v.GetStringSlice(cfgKeyBackendPriority)
	if len(names) == 1 && strings.Contains(names[0], ",") {
		names = strings.Split(names[0], ",")
	}
	if len(names) > 0 {
		priority := make([]ndarray.Backend, len(names))
		for i, n := range names {
			b, err := ndarray.ParseBackend(strings.TrimSpace(n))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cfgKeyBackendPriority, err)
			}
			priority[i] = b
		}
		opts = append(opts, triangle.WithBackendPriority(priority...))
	}

	switch n := v.GetInt(cfgKeyWorkers); {
	case n < 1:
		return nil, fmt.Errorf("%s: must be >= 1, got %d", cfgKeyWorkers, n)
	case n > 1:
		opts = append(opts, triangle.WithWorkers(n))
	}

	return opts, nil
}
