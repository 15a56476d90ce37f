package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/praylink/internal/client/cli"
	"github.com/dmitrijs2005/praylink/internal/client/client"
	"github.com/dmitrijs2005/praylink/internal/client/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	serverAddr string
	interval   time.Duration
	dataDir    string
	feedMode   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "praylink",
	Short: "PrayLink - share prayers and miracle requests with your community",
	Long: `PrayLink is an interactive client for the PrayLink faith community.

Run without arguments to start the interactive shell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		app.Run(ctx)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := client.NewPrayLinkClient(cfg.ServerEndpointAddr)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

// loadConfig applies defaults, the config file and then any flag the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.ServerEndpointAddr = serverAddr
	}
	if flags.Changed("interval") {
		cfg.OnlineCheckInterval = interval
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("feed") {
		cfg.FeedMode = feedMode
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "JSON or YAML config file")
	rootCmd.PersistentFlags().StringVarP(&serverAddr, "addr", "a", "", "server gRPC address (host:port)")
	rootCmd.PersistentFlags().DurationVarP(&interval, "interval", "i", 0, "online check interval")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "directory for the offline feed cache")
	rootCmd.PersistentFlags().StringVarP(&feedMode, "feed", "m", "", "initial feed mode: community | all")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "l", "", "log format: json | zap")

	rootCmd.AddCommand(pingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
