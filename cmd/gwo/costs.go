package main

import (
	"fmt"

	"github.com/akz4ol/gatewayops-go"
	"github.com/spf13/cobra"
)

var (
	costsJSON   bool
	costsPeriod string
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show gateway usage costs",
}

var costsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Overall cost totals for a period",
	Long: `Show total spend and request volume for a billing period.

Examples:
  gwo costs summary
  gwo costs summary --period week`,
	RunE: runCostsSummary,
}

var costsByServerCmd = &cobra.Command{
	Use:   "by-server",
	Short: "Cost breakdown per MCP server",
	RunE:  runCostsGrouped("server"),
}

var costsByTeamCmd = &cobra.Command{
	Use:   "by-team",
	Short: "Cost breakdown per team",
	RunE:  runCostsGrouped("team"),
}

var costsByToolCmd = &cobra.Command{
	Use:   "by-tool",
	Short: "Cost breakdown per tool",
	RunE:  runCostsGrouped("tool"),
}

func init() {
	costsCmd.PersistentFlags().BoolVar(&costsJSON, "json", false, "Output as JSON")
	costsCmd.PersistentFlags().StringVar(&costsPeriod, "period", "month", "Billing period (day, week, month)")

	costsCmd.AddCommand(costsSummaryCmd)
	costsCmd.AddCommand(costsByServerCmd)
	costsCmd.AddCommand(costsByTeamCmd)
	costsCmd.AddCommand(costsByToolCmd)
	rootCmd.AddCommand(costsCmd)
}

func runCostsSummary(cmd *cobra.Command, args []string) error {
	summary, err := gw.Costs().Summary(cmd.Context(), costsPeriod, "")
	if err != nil {
		return err
	}

	if costsJSON {
		return printJSON(summary)
	}

	fmt.Println(titleStyle.Render("Costs"), mutedStyle.Render("("+summary.Period+")"))
	fmt.Printf("  Total:        $%.2f\n", summary.TotalCost)
	fmt.Printf("  Requests:     %d\n", summary.TotalRequests)
	fmt.Printf("  Avg/request:  $%.4f\n", summary.AvgCostPerRequest)
	return nil
}

func runCostsGrouped(dimension string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		summary, err := gw.Costs().Summary(cmd.Context(), costsPeriod, dimension)
		if err != nil {
			return err
		}

		if costsJSON {
			return printJSON(summary)
		}

		var rows []gatewayops.CostBreakdown
		switch dimension {
		case "server":
			rows = summary.ByServer
		case "team":
			rows = summary.ByTeam
		case "tool":
			rows = summary.ByTool
		}
		if len(rows) == 0 {
			fmt.Println("No cost data for this period")
			return nil
		}

		printBreakdown(rows, summary.TotalCost)
		return nil
	}
}

func printBreakdown(rows []gatewayops.CostBreakdown, total float64) {
	valueWidth := 5 // "VALUE"
	for _, row := range rows {
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	fmt.Printf("%-*s  %10s  %9s  %s\n", valueWidth, "VALUE", "COST", "REQUESTS", "SHARE")
	for _, row := range rows {
		fmt.Printf("%-*s  %10s  %9d  %s\n", valueWidth, row.Value,
			fmt.Sprintf("$%.2f", row.Cost), row.RequestCount,
			formatShare(row.Cost, total))
	}
}

// formatShare renders a row's fraction of the total as a percentage.
func formatShare(cost, total float64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", cost/total*100)
}
