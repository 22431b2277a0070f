package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mcpJSON     bool
	mcpArgsJSON string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Interact with MCP servers behind the gateway",
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List and call MCP tools",
}

var toolsListCmd = &cobra.Command{
	Use:   "list <server>",
	Short: "List the tools a server exposes",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolsList,
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <server> <tool>",
	Short: "Call a tool through the gateway",
	Long: `Call a tool on an MCP server. Arguments are passed as a JSON object.

Examples:
  gwo mcp tools call filesystem read_file --args '{"path":"/data.csv"}'
  gwo mcp tools call github search_issues --args '{"query":"is:open"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runToolsCall,
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List and read MCP resources",
}

var resourcesListCmd = &cobra.Command{
	Use:   "list <server>",
	Short: "List the resources a server exposes",
	Args:  cobra.ExactArgs(1),
	RunE:  runResourcesList,
}

var resourcesReadCmd = &cobra.Command{
	Use:   "read <server> <uri>",
	Short: "Read a resource by URI",
	Args:  cobra.ExactArgs(2),
	RunE:  runResourcesRead,
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List and expand MCP prompts",
}

var promptsListCmd = &cobra.Command{
	Use:   "list <server>",
	Short: "List the prompts a server exposes",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsList,
}

var promptsGetCmd = &cobra.Command{
	Use:   "get <server> <prompt>",
	Short: "Expand a prompt into messages",
	Args:  cobra.ExactArgs(2),
	RunE:  runPromptsGet,
}

func init() {
	mcpCmd.PersistentFlags().BoolVar(&mcpJSON, "json", false, "Output as JSON")
	toolsCallCmd.Flags().StringVar(&mcpArgsJSON, "args", "{}", "Tool arguments as a JSON object")
	promptsGetCmd.Flags().StringVar(&mcpArgsJSON, "args", "{}", "Prompt arguments as a JSON object")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	resourcesCmd.AddCommand(resourcesListCmd)
	resourcesCmd.AddCommand(resourcesReadCmd)
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsGetCmd)

	mcpCmd.AddCommand(toolsCmd)
	mcpCmd.AddCommand(resourcesCmd)
	mcpCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(mcpCmd)
}

func parseArgsFlag() (map[string]any, error) {
	args := map[string]any{}
	if err := json.Unmarshal([]byte(mcpArgsJSON), &args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	return args, nil
}

func runToolsList(cmd *cobra.Command, args []string) error {
	tools, err := gw.Server(args[0]).Tools().List(cmd.Context())
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(tools)
	}
	if len(tools) == 0 {
		fmt.Println("No tools available")
		return nil
	}

	nameWidth := 4 // "NAME"
	for _, t := range tools {
		if len(t.Name) > nameWidth {
			nameWidth = len(t.Name)
		}
	}
	fmt.Printf("%-*s  %s\n", nameWidth, headerStyle.Render("NAME"), headerStyle.Render("DESCRIPTION"))
	for _, t := range tools {
		fmt.Printf("%-*s  %s\n", nameWidth, t.Name, truncate(t.Description, 70))
	}
	return nil
}

func runToolsCall(cmd *cobra.Command, args []string) error {
	toolArgs, err := parseArgsFlag()
	if err != nil {
		return err
	}

	result, err := gw.Server(args[0]).Tools().Call(cmd.Context(), args[1], toolArgs)
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(result)
	}
	if result.IsError {
		fmt.Println(errStyle.Render("Tool reported an error"))
	}
	if err := printJSON(result.Content); err != nil {
		return err
	}
	if result.DurationMs > 0 {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%dms  trace %s", result.DurationMs, result.TraceID)))
	}
	return nil
}

func runResourcesList(cmd *cobra.Command, args []string) error {
	resources, err := gw.Server(args[0]).Resources().List(cmd.Context())
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(resources)
	}
	if len(resources) == 0 {
		fmt.Println("No resources available")
		return nil
	}

	uriWidth := 3 // "URI"
	for _, r := range resources {
		if len(r.URI) > uriWidth {
			uriWidth = len(r.URI)
		}
	}
	if uriWidth > 50 {
		uriWidth = 50
	}
	fmt.Printf("%-*s  %s\n", uriWidth, headerStyle.Render("URI"), headerStyle.Render("NAME"))
	for _, r := range resources {
		fmt.Printf("%-*s  %s\n", uriWidth, truncate(r.URI, uriWidth), r.Name)
	}
	return nil
}

func runResourcesRead(cmd *cobra.Command, args []string) error {
	content, err := gw.Server(args[0]).Resources().Read(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(content)
	}
	if content.Text != "" {
		fmt.Println(content.Text)
		return nil
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("binary content (%s), %d bytes base64", content.MimeType, len(content.Blob))))
	return nil
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	prompts, err := gw.Server(args[0]).Prompts().List(cmd.Context())
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(prompts)
	}
	if len(prompts) == 0 {
		fmt.Println("No prompts available")
		return nil
	}
	for _, p := range prompts {
		fmt.Println(titleStyle.Render(p.Name))
		if p.Description != "" {
			fmt.Println("  " + mutedStyle.Render(p.Description))
		}
	}
	return nil
}

func runPromptsGet(cmd *cobra.Command, args []string) error {
	promptArgs, err := parseArgsFlag()
	if err != nil {
		return err
	}

	messages, err := gw.Server(args[0]).Prompts().Get(cmd.Context(), args[1], promptArgs)
	if err != nil {
		return err
	}

	if mcpJSON {
		return printJSON(messages)
	}
	for _, m := range messages {
		fmt.Println(headerStyle.Render(m.Role+":"), m.Content)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
