package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/akz4ol/gatewayops-go"
	"github.com/spf13/cobra"
)

var (
	tracesJSON      bool
	tracesLimit     int
	tracesOffset    int
	tracesServer    string
	tracesOperation string
	tracesStatus    string
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect request traces",
}

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent traces",
	Long: `List traces recorded by the gateway, newest first.

Examples:
  gwo traces list
  gwo traces list --server filesystem --status error
  gwo traces list --limit 100 --offset 100`,
	RunE: runTracesList,
}

var tracesGetCmd = &cobra.Command{
	Use:   "get <trace-id>",
	Short: "Show one trace with its span tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracesGet,
}

func init() {
	tracesCmd.PersistentFlags().BoolVar(&tracesJSON, "json", false, "Output as JSON")
	tracesListCmd.Flags().IntVar(&tracesLimit, "limit", gatewayops.DefaultTraceLimit, "Maximum traces to return")
	tracesListCmd.Flags().IntVar(&tracesOffset, "offset", 0, "Pagination offset")
	tracesListCmd.Flags().StringVar(&tracesServer, "server", "", "Filter by MCP server name")
	tracesListCmd.Flags().StringVar(&tracesOperation, "operation", "", "Filter by operation (e.g. tools/call)")
	tracesListCmd.Flags().StringVar(&tracesStatus, "status", "", "Filter by status (success, error, blocked)")

	tracesCmd.AddCommand(tracesListCmd)
	tracesCmd.AddCommand(tracesGetCmd)
	rootCmd.AddCommand(tracesCmd)
}

func runTracesList(cmd *cobra.Command, args []string) error {
	page, err := gw.Traces().List(cmd.Context(), gatewayops.TraceFilter{
		MCPServer: tracesServer,
		Operation: tracesOperation,
		Status:    tracesStatus,
		Limit:     tracesLimit,
		Offset:    tracesOffset,
	})
	if err != nil {
		return err
	}

	if tracesJSON {
		return printJSON(page)
	}
	if len(page.Traces) == 0 {
		fmt.Println("No traces found")
		return nil
	}

	fmt.Print(renderTraceRows(page.Traces))
	if page.HasMore() {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d (use --offset %d for more)",
			page.Offset+1, page.Offset+len(page.Traces), page.Total, page.Offset+page.Limit)))
	}
	return nil
}

func runTracesGet(cmd *cobra.Command, args []string) error {
	trace, err := gw.Traces().Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if tracesJSON {
		return printJSON(trace)
	}

	fmt.Println(titleStyle.Render("Trace"), trace.ID)
	fmt.Println("  Server:   ", trace.MCPServer)
	fmt.Println("  Operation:", trace.Operation)
	fmt.Println("  Status:   ", statusStyle(trace.Status).Render(trace.Status))
	fmt.Println("  Started:  ", trace.StartTime.Format(time.RFC3339))
	fmt.Println("  Duration: ", formatDuration(trace.DurationMs))
	if trace.ErrorMessage != "" {
		fmt.Println("  Error:    ", errStyle.Render(trace.ErrorMessage))
	}
	if trace.Cost > 0 {
		fmt.Printf("  Cost:      $%.4f\n", trace.Cost)
	}

	if len(trace.Spans) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Spans"))
		printSpanTree(trace, "", 0)
	}
	return nil
}

// printSpanTree walks the span hierarchy depth-first, indenting children.
func printSpanTree(trace *gatewayops.Trace, parentID string, depth int) {
	for _, span := range trace.SpanChildren(parentID) {
		indent := strings.Repeat("  ", depth+1)
		fmt.Printf("%s%s %s %s\n", indent, span.Name,
			mutedStyle.Render(formatDuration(span.DurationMs)),
			statusStyle(span.Status).Render(span.Status))
		printSpanTree(trace, span.ID, depth+1)
	}
}

// truncate shortens s to max runes, appending an ellipsis marker.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// formatAge renders an elapsed duration in the coarsest sensible unit.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
