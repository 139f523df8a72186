package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/guarzo/welcome/common"
	"github.com/guarzo/welcome/modules/welcome"
)

var version = "dev"

var (
	flagEndpoint string
	flagTimeout  time.Duration
	flagTTL      time.Duration
	flagConfig   string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:     "welcome",
		Short:   "Fetch the welcome message from a remote endpoint",
		Version: version,
	}

	root.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "welcome endpoint URL")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "request timeout")
	root.PersistentFlags().DurationVar(&flagTTL, "ttl", 0, "cache TTL")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGetCmd(),
		newHealthCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newGetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the welcome message",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}
			msg, err := svc.GetMessage(cmd.Context(), force)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "bypass the cache")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the welcome endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}
			status := svc.HealthCheck(cmd.Context())

			out, _ := json.Marshal(status)
			fmt.Println(string(out))

			if !status.OK {
				return fmt.Errorf("endpoint is down: %s", status.Info)
			}
			return nil
		},
	}
}

// buildService assembles the effective configuration (flags over config
// file over environment over defaults) and wires the service.
func buildService() (welcome.Service, error) {
	var cfg common.Config
	if flagConfig != "" {
		loaded, err := common.LoadFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = common.FromEnv()
	}

	if flagEndpoint != "" {
		cfg.EndpointURL = flagEndpoint
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	if flagTTL > 0 {
		cfg.CacheTTL = flagTTL
	}

	return welcome.NewDefaultService(cfg, newLogger()), nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
