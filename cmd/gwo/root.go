package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/akz4ol/gatewayops-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagAPIKey  string
	flagBaseURL string
	flagConfig  string

	// gw is the shared client, built in PersistentPreRunE for commands
	// that talk to the gateway.
	gw *gatewayops.Client
)

var rootCmd = &cobra.Command{
	Use:   "gwo",
	Short: "Command-line interface for the GatewayOps MCP gateway",
	Long: `gwo manages MCP servers, traces, costs and API keys through a
GatewayOps gateway.

Credentials come from --api-key, the GATEWAYOPS_API_KEY environment
variable, or ~/.gwo.yaml (written by 'gwo auth login').`,
	Version:           fmt.Sprintf("%s (commit: %s)", version, commit),
	PersistentPreRunE: setupClient,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Suppress errors from being printed twice
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "GatewayOps API key (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Gateway base URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: ~/.gwo.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the gwo version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gwo %s (commit: %s)\n", version, commit)
		},
	})
}

// commandsWithoutAuth can run before any API key is configured.
var commandsWithoutAuth = map[string]bool{
	"login":      true,
	"logout":     true,
	"status":     true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func setupClient(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	apiKey := flagAPIKey
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if apiKey == "" {
		if commandsWithoutAuth[cmd.Name()] {
			return nil
		}
		return fmt.Errorf("no API key configured: run 'gwo auth login' or set GATEWAYOPS_API_KEY")
	}

	opts := []gatewayops.Option{}
	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	if baseURL != "" {
		opts = append(opts, gatewayops.WithBaseURL(baseURL))
	}

	gw = gatewayops.New(apiKey, opts...)
	return nil
}

func loadConfig() error {
	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gwo")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GATEWAYOPS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; env and flags still apply.
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
