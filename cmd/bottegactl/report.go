package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bottega/internal/analytics"
	"bottega/internal/core"
	"bottega/internal/ledger"
)

var reportTopN int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Replay a demo sales day and print the daily report",
	Long: `Seeds the default shop inventory, records a representative day of sales
against it, and prints the date-range summary plus the top sellers by
quantity and by revenue. Useful for eyeballing report output without
running the service.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&reportTopN, "top", "n", analytics.DefaultTopN, "Number of top sellers to show")
}

// A plausible day in the shop, touching most of the seeded items.
var demoSales = []struct {
	item     string
	quantity int
}{
	{"Rice 5kg", 3},
	{"Sugar 1kg", 8},
	{"Cooking Oil 1L", 2},
	{"Sugar 1kg", 4},
	{"Laundry Soap", 10},
	{"Milk Powder 400g", 1},
	{"Rice 5kg", 2},
	{"Flour 2kg", 5},
	{"Laundry Soap", 6},
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	led := ledger.New()
	if err := led.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}

	today := core.Today()
	for _, s := range demoSales {
		if !led.RecordSale(ctx, ledger.SaleRequest{ItemName: s.item, Quantity: s.quantity, Date: today}) {
			return fmt.Errorf("record demo sale for %q: %s", s.item, led.LastError())
		}
	}

	sales := led.Sales()
	summary := analytics.Summarize(sales, today, today)

	fmt.Printf("Report for %s\n", today)
	fmt.Printf("  revenue        %s\n", summary.Revenue)
	fmt.Printf("  transactions   %d\n", summary.Transactions)
	fmt.Printf("  distinct items %d\n", summary.DistinctItems)

	fmt.Printf("\nTop %d by quantity\n", reportTopN)
	for i, t := range analytics.TopByQuantityBetween(sales, today, today, reportTopN) {
		fmt.Printf("  %d. %-30s %d units\n", i+1, t.ItemName, t.Quantity)
	}

	fmt.Printf("\nTop %d by revenue\n", reportTopN)
	for i, t := range analytics.TopByRevenueBetween(sales, today, today, reportTopN) {
		fmt.Printf("  %d. %-30s %s\n", i+1, t.ItemName, t.Revenue)
	}

	fmt.Println("\nRemaining stock")
	for _, item := range led.Items() {
		fmt.Printf("  %-30s %d remaining\n", item.Name, item.QuantityRemaining)
	}
	return nil
}
