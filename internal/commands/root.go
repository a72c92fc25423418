// Package commands implements the faqbot command line.
package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/0xcro3dile/faqbot-go/internal/infrastructure/config"
	"github.com/0xcro3dile/faqbot-go/internal/infrastructure/logging"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	version string
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     zerolog.Logger
}

// Execute runs the root command.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own viper instance.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, v: config.NewViper("")}

	root := &cobra.Command{
		Use:           "faqbot",
		Short:         "faqbot answers questions from a curated Q&A dataset",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./faqbot.yaml if present)")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "", "log format (console or json)")
	pf.String("dataset", "", "dataset file path")
	pf.String("driver", "", "dataset driver (file, sqlite3, postgres)")
	pf.String("dsn", "", "database connection string for sql drivers")
	pf.String("table", "", "dataset table for sql drivers")
	pf.Float64("threshold", 0, "minimum similarity a match must exceed")

	// Viper only lets a bound flag override the key when it was set explicitly.
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("dataset.path", pf.Lookup("dataset"))
	_ = a.v.BindPFlag("dataset.driver", pf.Lookup("driver"))
	_ = a.v.BindPFlag("dataset.dsn", pf.Lookup("dsn"))
	_ = a.v.BindPFlag("dataset.table", pf.Lookup("table"))
	_ = a.v.BindPFlag("matching.threshold", pf.Lookup("threshold"))

	root.AddCommand(
		newServeCommand(a),
		newAskCommand(a),
		newValidateCommand(a),
		newMCPCommand(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	a.log.Debug().Str("config", a.v.ConfigFileUsed()).Msg("configuration loaded")
	return nil
}
