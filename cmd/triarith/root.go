// SPDX-License-Identifier: MIT

// Root command for the triarith CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lossdev/converters"
	"github.com/katalvlaran/lossdev/triangle"
)

// app carries the state shared by subcommands once PersistentPreRunE ran.
type app struct {
	configFile string
	verbose    bool
	format     string
	output     string

	cfg    *viper.Viper
	log    *zap.Logger
	engine *triangle.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "triarith",
		Short: "Arithmetic on loss development triangles",
		Long: `triarith aligns two loss triangles (index, columns, origins and
development ages) and combines them cell by cell. Triangles are read from
and written to YAML or TOML documents.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error { return a.teardown() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./triarith.yaml or ~/.config/triarith/triarith.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log alignment decisions at debug level")
	pf.Int("workers", 1, "concurrent keys in the group-key fallback")
	pf.StringSlice("backend-priority", nil, "backend preference, most preferred first (sparse,dense)")
	pf.StringVarP(&a.format, "format", "f", string(converters.YAML), "stdout format: yaml or toml")
	pf.StringVarP(&a.output, "output", "o", "", "write the result to this file instead of stdout")

	root.AddCommand(newEvalCmd(a), newUnaryCmd(a), newShowCmd(a), newGroupCmd(a))

	return root
}

// setup loads configuration, then builds the logger and the engine.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	if err = cfg.BindPFlag(cfgKeyWorkers, cmd.Flags().Lookup("workers")); err != nil {
		return err
	}
	if err = cfg.BindPFlag(cfgKeyBackendPriority, cmd.Flags().Lookup("backend-priority")); err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = newLogger(cfg.GetString(cfgKeyLogLevel), a.verbose); err != nil {
		return err
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	a.engine = triangle.NewEngine(append(opts, triangle.WithLogger(a.log))...)
	a.log.Debug("engine ready",
		zap.Int(cfgKeyWorkers, cfg.GetInt(cfgKeyWorkers)),
		zap.Strings(cfgKeyBackendPriority, cfg.GetStringSlice(cfgKeyBackendPriority)))

	return nil
}

func (a *app) teardown() error {
	if a.log != nil {
		// Sync on stderr fails with EINVAL on some platforms; nothing to report.
		_ = a.log.Sync()
	}

	return nil
}

// emit writes t to --output, or to stdout in --format.
func (a *app) emit(cmd *cobra.Command, t *triangle.Triangle) error {
	if a.output != "" {
		if err := converters.WriteFile(a.output, t); err != nil {
			return err
		}
		a.log.Info("result written", zap.String("path", a.output))
		return nil
	}
	switch f := converters.Format(a.format); f {
	case converters.YAML, converters.TOML:
		return converters.Encode(cmd.OutOrStdout(), t, f)
	default:
		return fmt.Errorf("--format %q: %w", a.format, converters.ErrUnsupportedFormat)
	}
}
