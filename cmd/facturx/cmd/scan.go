package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var scanDeep bool

var scanCmd = &cobra.Command{
	Use:   "scan [file.pdf]",
	Short: "Extract invoice fields from a PDF",
	Long: `Extract best-effort invoice fields from a PDF without generating
anything. Useful for previewing what generate would work with.

Examples:
  facturx scan invoice.pdf
  facturx scan invoice.pdf --deep --analysis-api-key <key>`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanDeep, "deep", false, "Use AI deep scan")
}

func runScan(cmd *cobra.Command, args []string) error {
	pdfData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	pipeline := newPipeline()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extracted, method, err := pipeline.Scan(ctx, pdfData, scanDeep)
	if err != nil {
		return err
	}

	out := map[string]interface{}{
		"method": string(method),
		"fields": extracted,
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
