package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-studio/internal/processor"
)

var (
	batchOutput string
	batchDeep   bool
	batchQuota  int
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir|files...]",
	Short: "Process multiple invoice PDFs into a zip bundle",
	Long: `Process many invoice PDFs in one run. Outputs a zip archive holding
the generated Factur-X PDFs and a CSV processing report. Files whose
extraction lacks an invoice number or net total are skipped and
flagged in the report.

Examples:
  facturx batch ./invoices -o batch.zip
  facturx batch a.pdf b.pdf c.pdf --deep --quota 50`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "batch_output.zip", "Output zip file")
	batchCmd.Flags().BoolVar(&batchDeep, "deep", false, "Use AI deep scan for field extraction")
	batchCmd.Flags().IntVar(&batchQuota, "quota", 0, "Maximum files to process (0 = unlimited)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	profile, err := selectedProfile()
	if err != nil {
		return err
	}

	files, err := collectPDFs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found to process")
	}

	printVerbose("Found %d files to process\n", len(files))

	items := make([]processor.BatchItem, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", file, err)
		}
		items = append(items, processor.BatchItem{Name: filepath.Base(file), PDF: data})
	}

	var quota *processor.Quota
	if batchQuota > 0 {
		quota = processor.NewQuota(batchQuota)
	}

	pipeline := newPipeline()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(items))*2*time.Minute)
	defer cancel()

	archive, rows, err := pipeline.ProcessBatch(ctx, items, processor.Request{
		Profile:  profile,
		Operator: operatorParty(),
		DeepScan: batchDeep,
		Quota:    quota,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(batchOutput, archive, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", batchOutput, err)
	}

	printReport(rows)
	fmt.Printf("Wrote %s (%d files)\n", batchOutput, len(rows))
	return nil
}

func printReport(rows []processor.BatchRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATUS\tINVOICE\tTOTAL HT\tREASON")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.File, row.Status, row.InvoiceNumber, row.TotalHT, row.Reason)
	}
	w.Flush()
}

func collectPDFs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("file not found: %s", arg)
		}
		files = append(files, matches...)
	}

	return files, nil
}
