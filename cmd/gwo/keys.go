package main

import (
	"fmt"
	"time"

	"github.com/akz4ol/gatewayops-go"
	"github.com/spf13/cobra"
)

var (
	keysJSON        bool
	keyName         string
	keyEnvironment  string
	keyPermissions  string
	keyRateLimitRPM int
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage gateway API keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys for the organisation",
	RunE:  runKeysList,
}

var keysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API key",
	Long: `Create an API key. The full token is shown exactly once.

Examples:
  gwo keys create --name ci --environment production
  gwo keys create --name dev --rate-limit 120`,
	RunE: runKeysCreate,
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke a key, keeping its audit record",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysRevoke,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <key-id>",
	Short: "Delete a key permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

func init() {
	keysCmd.PersistentFlags().BoolVar(&keysJSON, "json", false, "Output as JSON")
	keysCreateCmd.Flags().StringVar(&keyName, "name", "", "Key name (required)")
	keysCreateCmd.Flags().StringVar(&keyEnvironment, "environment", "", "Environment label (e.g. production)")
	keysCreateCmd.Flags().StringVar(&keyPermissions, "permissions", "", "Permission set for the key")
	keysCreateCmd.Flags().IntVar(&keyRateLimitRPM, "rate-limit", 0, "Requests per minute (0 = org default)")
	_ = keysCreateCmd.MarkFlagRequired("name")

	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysCreateCmd)
	keysCmd.AddCommand(keysRevokeCmd)
	keysCmd.AddCommand(keysDeleteCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysList(cmd *cobra.Command, args []string) error {
	keys, err := gw.Keys().List(cmd.Context())
	if err != nil {
		return err
	}

	if keysJSON {
		return printJSON(keys)
	}
	if len(keys) == 0 {
		fmt.Println("No API keys")
		return nil
	}

	nameWidth := 4 // "NAME"
	for _, k := range keys {
		if len(k.Name) > nameWidth {
			nameWidth = len(k.Name)
		}
	}
	fmt.Printf("%-12s  %-*s  %-12s  %-10s  %s\n", "ID", nameWidth, "NAME", "PREFIX", "ENV", "LAST USED")
	for _, k := range keys {
		lastUsed := "never"
		if k.LastUsedAt != nil {
			lastUsed = formatAge(time.Since(*k.LastUsedAt)) + " ago"
		}
		fmt.Printf("%-12s  %-*s  %-12s  %-10s  %s\n",
			truncate(k.ID, 12), nameWidth, k.Name, k.KeyPrefix, k.Environment, lastUsed)
	}
	return nil
}

func runKeysCreate(cmd *cobra.Command, args []string) error {
	created, err := gw.Keys().Create(cmd.Context(), gatewayops.CreateKeyRequest{
		Name:         keyName,
		Environment:  keyEnvironment,
		Permissions:  keyPermissions,
		RateLimitRPM: keyRateLimitRPM,
	})
	if err != nil {
		return err
	}

	if keysJSON {
		return printJSON(created)
	}

	fmt.Println(successStyle.Render("✓"), "Created key", created.Key.ID)
	fmt.Println()
	fmt.Println("  " + titleStyle.Render(created.Token))
	fmt.Println()
	fmt.Println(warnStyle.Render("Store this token now; it cannot be shown again."))
	return nil
}

func runKeysRevoke(cmd *cobra.Command, args []string) error {
	if err := gw.Keys().Revoke(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓"), "Revoked", args[0])
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	if err := gw.Keys().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓"), "Deleted", args[0])
	return nil
}
