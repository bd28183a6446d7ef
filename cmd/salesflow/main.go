package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/config"
)

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: v, stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "salesflow",
		Short: "📊 Monthly sales analysis",
		Long: `salesflow: Analyze a monthly sales table.

Reads Month/Revenue/Expenses from a CSV file (creating a sample dataset when
the file does not exist), computes profit, profit margin and month-over-month
profit growth, prints a summary report with charts, and writes the augmented
table to a new CSV file.

Running salesflow with no subcommand is the same as "salesflow analyze".`,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runAnalyze,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./salesflow.yaml or $HOME/.config/salesflow/salesflow.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format (console, json)")

	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	addAnalyzeFlags(rootCmd, v)

	rootCmd.AddCommand(a.analyzeCmd())
	rootCmd.AddCommand(a.sampleCmd())
	rootCmd.AddCommand(a.versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	err := newRootCmd(viper.GetViper(), os.Stdout, os.Stderr).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(fmt.Sprintf("%s/.config/salesflow", home))
		}
		a.v.SetConfigName("salesflow")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("SALESFLOW")
	a.v.SetEnvKeyReplacer(envKeyReplacer)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return common.NewUserError("failed to read config", err)
		}
		// No config file is fine: every setting has a default.
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return common.NewUserError("invalid configuration", err)
	}
	a.cfg = cfg

	return setupLogging(cfg.Logging)
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := common.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, cfg.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "salesflow version %s\n", version)
		},
	}
}
