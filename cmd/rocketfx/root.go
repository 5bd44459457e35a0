package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	log       *logrus.Logger
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:   "rocketfx",
		Short: "Real-time multi-effect chain driven by one macro",
		Long: `rocketfx runs a chain of effects and generators whose parameters can
be modulated by a single Amount macro. Audio is rendered offline to WAV
files or played live through the default output device.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.configureLogging()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newParamsCmd(a), newRenderCmd(a), newPlayCmd(a))
	return root
}

func (a *app) configureLogging() error {
	level, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("rocketfx: %w", err)
	}
	a.log.SetLevel(level)
	a.log.SetOutput(os.Stderr)

	switch a.logFormat {
	case "text":
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("rocketfx: unknown log format %q", a.logFormat)
	}
	return nil
}
