package processor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"regexp"

	"github.com/rezonia/facturx-studio/internal/model"
)

// BatchItem is one PDF in a bulk run
type BatchItem struct {
	Name string
	PDF  []byte
}

// Batch statuses
const (
	BatchStatusSuccess = "SUCCESS"
	BatchStatusFailed  = "FAILED"
	BatchStatusError   = "ERROR"
)

// BatchRow is one line of the bulk processing report
type BatchRow struct {
	File          string
	Status        string
	Profile       string
	InvoiceNumber string
	TotalHT       string
	Reason        string
}

// ReportName is the report filename inside the batch archive
const ReportName = "processing_report.csv"

// unsafeFilenameChars are stripped from invoice numbers before they
// become output filenames
var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// ProcessBatch runs every item through the pipeline and packages the
// successful outputs plus a CSV report into a single zip archive.
// Files whose extraction lacks an invoice number or net total are
// skipped and flagged in the report rather than failing the batch;
// the quota is consumed per attempted file, matching single mode.
func (p *Pipeline) ProcessBatch(ctx context.Context, items []BatchItem, req Request) ([]byte, []BatchRow, error) {
	rows := make([]BatchRow, 0, len(items))

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	for _, item := range items {
		row := p.processBatchItem(ctx, archive, item, req)
		rows = append(rows, row)
	}

	if err := writeReport(archive, rows); err != nil {
		archive.Close()
		return nil, rows, err
	}
	if err := archive.Close(); err != nil {
		return nil, rows, err
	}

	return buf.Bytes(), rows, nil
}

func (p *Pipeline) processBatchItem(ctx context.Context, archive *zip.Writer, item BatchItem, req Request) BatchRow {
	row := BatchRow{File: item.Name, Profile: string(req.Profile)}

	if err := req.Quota.Consume(); err != nil {
		row.Status = BatchStatusError
		row.Reason = err.Error()
		return row
	}

	extracted, _, err := p.Scan(ctx, item.PDF, req.DeepScan)
	if err != nil {
		row.Status = BatchStatusError
		row.Reason = err.Error()
		return row
	}

	if !extracted.Has(model.FieldInvoiceNumber) || !extracted.Has(model.FieldTotalHT) {
		row.Status = BatchStatusFailed
		row.Reason = "missing invoice number or net total"
		return row
	}

	itemReq := req
	itemReq.PDF = item.PDF
	itemReq.Quota = nil // already consumed above

	result := p.ProcessPDF(ctx, itemReq)
	if result.Error != nil {
		row.Status = BatchStatusError
		row.Reason = result.Error.Error()
		return row
	}

	safe := unsafeFilenameChars.ReplaceAllString(result.Invoice.Header.InvoiceNumber, "_")
	name := fmt.Sprintf("%s_facturx.pdf", safe)

	w, err := archive.Create(name)
	if err == nil {
		_, err = w.Write(result.PDF)
	}
	if err != nil {
		row.Status = BatchStatusError
		row.Reason = err.Error()
		return row
	}

	row.Status = BatchStatusSuccess
	row.InvoiceNumber = result.Invoice.Header.InvoiceNumber
	row.TotalHT = result.Invoice.NetTotal.StringFixed(2)
	return row
}

func writeReport(archive *zip.Writer, rows []BatchRow) error {
	w, err := archive.Create(ReportName)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"file", "status", "profile", "invoice_number", "total_ht", "reason"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.File, row.Status, row.Profile, row.InvoiceNumber, row.TotalHT, row.Reason}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
