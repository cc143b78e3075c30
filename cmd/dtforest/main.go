package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
)

type rootCmdConfig struct {
	verbose   bool
	logLevel  string
	logFormat string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "dtforest",
		Short: "dtforest grows ID3 decision trees and random forests",
		Long: `A tool to grow decision trees and random forests over categorical data
read from CSV files, and to measure how well they predict a label.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setupLogging(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress (shorthand for --log-level info)")
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "warn", "minimum log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&(config.logFormat), "log-format", "console", "log output format: console or json")
	rootCmd.AddCommand(versionCmd(), growCmd(config), evaluateCmd(config))
	return rootCmd
}

func (c *rootCmdConfig) setupLogging(cmd *cobra.Command) error {
	levelName := c.logLevel
	if c.verbose && !cmd.Flags().Changed("log-level") {
		levelName = "info"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}

	switch c.logFormat {
	case "json":
		if err := log.SetupLogger(cmd.ErrOrStderr(), levelName); err != nil {
			return err
		}
	case "console":
		log.SetLogger(log.NewConsoleLogger(cmd.ErrOrStderr(), level))
	default:
		return errors.NewValidationError("log-format", "must be console or json", c.logFormat)
	}
	logger := log.GetLogger().With(log.RunIDKey, uuid.NewString()[:8])
	log.SetLogger(logger)
	log.RouteWarnings(logger)
	return nil
}
