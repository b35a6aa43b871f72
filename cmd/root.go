package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/ned-tools/fai-report/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions is shared by every subcommand; cfg is set once the
// persistent pre-run has read the configuration.
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "fai-report",
		Short: "First article inspection photo report generator",
		Long: `fai-report collects inspection photos in fixed categories and renders them,
one captioned page per photo behind a cover page, into a single PDF report.

Photos can be captured through the web form (serve) or listed in a YAML
manifest for offline builds (build).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/fai-report/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = opts.v.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = opts.v.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newBuildCmd(opts))
	cmd.AddCommand(newCategoriesCmd())

	return cmd
}

func (o *rootOptions) initConfig() error {
	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			o.v.AddConfigPath(filepath.Join(home, ".config", "fai-report"))
		}
		o.v.SetConfigName("config")
		o.v.SetConfigType("yaml")
	}

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if err := setupLogging(cfg.Logging); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}
