package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loginKey string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage gateway credentials",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API key in ~/.gwo.yaml",
	Long: `Store a GatewayOps API key for use by later commands.

With --key the key is taken from the flag; otherwise an interactive
prompt asks for it.

Examples:
  gwo auth login
  gwo auth login --key gwo_live_abc123`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured credentials",
	RunE:  runAuthStatus,
}

func init() {
	loginCmd.Flags().StringVar(&loginKey, "key", "", "API key to store (skips the prompt)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(authCmd)
}

func validateAPIKey(key string) error {
	if !strings.HasPrefix(key, "gwo_") {
		return fmt.Errorf("API keys start with gwo_")
	}
	if len(key) < 12 {
		return fmt.Errorf("key looks too short")
	}
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	key := loginKey
	if key == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("GatewayOps API key").
					Description("Find it in the dashboard under Settings > API Keys").
					EchoMode(huh.EchoModePassword).
					Validate(validateAPIKey).
					Value(&key),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	} else if err := validateAPIKey(key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	viper.Set("api_key", key)
	if flagBaseURL != "" {
		viper.Set("base_url", flagBaseURL)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Println(successStyle.Render("✓"), "Credentials saved to", path)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Not logged in")
			return nil
		}
		return err
	}
	fmt.Println(successStyle.Render("✓"), "Removed", path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	key := viper.GetString("api_key")
	if flagAPIKey != "" {
		key = flagAPIKey
	}
	if key == "" {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Println("API key:", maskKey(key))
	if base := viper.GetString("base_url"); base != "" {
		fmt.Println("Base URL:", base)
	}
	return nil
}

// maskKey keeps the prefix and last four characters visible.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gwo.yaml"), nil
}
