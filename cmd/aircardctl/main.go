package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aircardctl/internal/adapters/modem"
	"aircardctl/internal/config"
	"aircardctl/internal/logging"
	"aircardctl/internal/useCases"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		url        string
		password   string
		sendTo     string
		message    string
		pairs      []string
		verbose    bool
		debug      bool
		useSyslog  bool
	)

	cmd := &cobra.Command{
		Use:   "aircardctl [flags] command ...",
		Short: "Talk to an AirCard-style LTE modem's web management API",
		Long: `aircardctl logs in to the modem's embedded web interface and runs the
given commands in order.

Commands: raw, info, inbox, sms, set`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				slog.Error(err.Error())
				return err
			}
			// flags win over file and environment
			if url != "" {
				cfg.URL = url
			}
			if password != "" {
				cfg.Password = password
			}
			cfg.SendTo = sendTo
			cfg.Message = message
			cfg.ConfigPairs = pairs
			cfg.Verbose = verbose
			cfg.Debug = debug
			cfg.Syslog = useSyslog

			logger, err := setupLogger(cfg)
			if err != nil {
				slog.Error(err.Error())
				return err
			}

			if err := cfg.Validate(); err != nil {
				logger.Error(err.Error())
				return err
			}

			cli, err := modem.NewClient(cfg.Host(), cfg.Password, logger, cfg.Verbose)
			if err != nil {
				logger.Error("client setup failed", "error", err)
				return err
			}
			defer cli.Close()

			d := useCases.NewDispatcher(cli, cfg, logger, os.Stdout)
			if err := d.Run(cmd.Context(), args); err != nil {
				logger.Error(err.Error())
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config-file", "", "path to YAML config file")
	cmd.Flags().StringArrayVarP(&pairs, "config", "c", nil, "key=value setting for the set command (repeatable)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&useSyslog, "log", "l", false, "log through syslog")
	cmd.Flags().StringVarP(&message, "message", "m", "", "SMS message text")
	cmd.Flags().StringVarP(&password, "password", "p", "", "web interface password")
	cmd.Flags().StringVarP(&sendTo, "sendto", "s", "", "SMS recipient phone number")
	cmd.Flags().StringVarP(&url, "url", "u", "", "device host, e.g. 192.168.1.1")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace HTTP requests and responses")

	return cmd
}

func setupLogger(cfg *config.AppConfig) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.Debug || cfg.Verbose {
		level = slog.LevelDebug
	}

	if cfg.Syslog {
		h, err := logging.NewSyslogHandler("aircardctl", level)
		if err != nil {
			return nil, err
		}
		return slog.New(h), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
