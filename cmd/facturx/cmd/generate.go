package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-studio/internal/processor"
)

var (
	generateOutput  string
	generateXMLOnly bool
	generateDeep    bool
	generateTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate [file.pdf]",
	Short: "Generate a Factur-X hybrid PDF from an invoice PDF",
	Long: `Generate a Factur-X compliant PDF from an ordinary invoice PDF.

Fields are extracted from the PDF text; the operator SIRET and VAT id
are stamped as the seller's registrations. Missing fields fall back to
defaults (net total 0, issue date today), so review the output for
sparse source documents.

Examples:
  facturx generate invoice.pdf --operator-siret 80258593400018 --operator-vat FR34802585934
  facturx generate invoice.pdf -p basic --deep -o invoice_facturx.pdf
  facturx generate invoice.pdf --xml-only -o facturx.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: <input>_facturx.pdf)")
	generateCmd.Flags().BoolVar(&generateXMLOnly, "xml-only", false, "Write the generated XML instead of the hybrid PDF")
	generateCmd.Flags().BoolVar(&generateDeep, "deep", false, "Use AI deep scan for field extraction")
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 2*time.Minute, "Processing timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	profile, err := selectedProfile()
	if err != nil {
		return err
	}

	pdfData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	pipeline := newPipeline()

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	result := pipeline.ProcessPDF(ctx, processor.Request{
		PDF:      pdfData,
		Profile:  profile,
		Operator: operatorParty(),
		DeepScan: generateDeep,
	})
	if result.Error != nil {
		return result.Error
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	data := result.PDF
	out := generateOutput
	if generateXMLOnly {
		data = result.XML
		if out == "" {
			out = "facturx.xml"
		}
	} else if out == "" {
		out = strings.TrimSuffix(args[0], ".pdf") + "_facturx.pdf"
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (profile: %s, invoice: %s)\n", out, profile, result.Invoice.Header.InvoiceNumber)
	return nil
}
