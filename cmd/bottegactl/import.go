package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bottega/internal/importer"
	"bottega/internal/ledger"
)

var (
	importNoHeader bool
	importSeed     bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a stock list into a fresh ledger and print per-line outcomes",
	Long: `Reads a stock list (name, quantity, unit cost per line) from a text file
or an .xlsx workbook, applies every valid line to a fresh ledger, and prints
one outcome per input line. Lines that fail to parse are reported and skipped;
they never abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importNoHeader, "no-header", false, "Treat the first row as data instead of a header")
	importCmd.Flags().BoolVar(&importSeed, "seed", false, "Start from the default shop inventory instead of an empty ledger")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	firstRowHeader := !importNoHeader

	var results []importer.LineResult
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		var err error
		results, err = importer.ParseWorkbook(path, firstRowHeader)
		if err != nil {
			return fmt.Errorf("read workbook %s: %w", path, err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		results = importer.Parse(string(data), firstRowHeader)
	}

	led := ledger.New()
	ctx := cmd.Context()
	if importSeed {
		if err := led.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	imported, failed := 0, 0
	for _, r := range results {
		if !r.OK() {
			failed++
			fmt.Printf("SKIP  %-40q %s\n", r.Raw, r.Err)
			continue
		}
		if err := led.AddItem(ctx, r.Name, r.Quantity, r.UnitCost); err != nil {
			failed++
			fmt.Printf("SKIP  %-40q %s\n", r.Raw, led.LastError())
			continue
		}
		imported++
		fmt.Printf("OK    %-30s qty %-5d cost %s\n", r.Name, r.Quantity, r.UnitCost)
	}

	fmt.Printf("\n%d imported, %d failed, %d items in ledger\n", imported, failed, len(led.Items()))
	return nil
}
