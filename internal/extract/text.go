package extract

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/facturx-studio/internal/model"
)

// Field scan patterns. Amounts capture two fractional digits with
// either separator; the coercion layer normalizes commas.
var (
	invoiceNumberPattern = regexp.MustCompile(`(?i)Invoice\s*(?:Number|No|ID)\s*[:\-]?\s*([A-Z0-9\-/]+)`)
	invoiceDatePattern   = regexp.MustCompile(`(?i)Invoice\s*Date\s*[:\-]?\s*(\d{4}[-/]\d{2}[-/]\d{2})`)
	sellerNamePattern    = regexp.MustCompile(`(?i)(?:Seller|Vendor|From)\s*[:\-]?\s*(\S[^\n]*)`)
	buyerNamePattern     = regexp.MustCompile(`(?i)(?:Customer|Buyer)\s*[:\-]?\s*(\S[^\n]*)`)
	totalHTPattern       = regexp.MustCompile(`(?i)(?:Subtotal|Total\s*HT)\s*[:\-]?\s*([0-9]+[.,][0-9]{2})`)
	totalTTCPattern      = regexp.MustCompile(`(?i)(?:Total\s*TTC|Amount\s*Due|Grand\s*Total)\s*[:\-]?\s*([0-9]+[.,][0-9]{2})`)
)

// literalPattern matches string operands of Tj/TJ show operators in a
// page content stream
var literalPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)

// TextExtractor scans PDF page content for invoice fields using
// regular expressions. No external calls, no API key, lowest
// confidence.
type TextExtractor struct{}

// NewTextExtractor creates a new text scan extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Method returns the extraction method identifier
func (e *TextExtractor) Method() string {
	return MethodText
}

// Extract scans the PDF text for known field labels. A PDF whose text
// cannot be recovered yields an empty map, not an error; only a
// structurally unreadable PDF fails.
func (e *TextExtractor) Extract(ctx context.Context, pdfData []byte) (model.Fields, error) {
	text, err := pageText(pdfData)
	if err != nil {
		return nil, model.NewExtractionError(MethodText, "cannot read PDF", err)
	}
	return ScanText(text), nil
}

// ScanText applies the field patterns to already-recovered text
func ScanText(text string) model.Fields {
	out := model.Fields{}

	if m := invoiceNumberPattern.FindStringSubmatch(text); m != nil {
		out[model.FieldInvoiceNumber] = strings.TrimSpace(m[1])
	}
	if m := invoiceDatePattern.FindStringSubmatch(text); m != nil {
		out[model.FieldInvoiceDate] = m[1]
	}
	if m := sellerNamePattern.FindStringSubmatch(text); m != nil {
		out[model.FieldSellerName] = strings.TrimSpace(m[1])
	}
	if m := buyerNamePattern.FindStringSubmatch(text); m != nil {
		out[model.FieldBuyerName] = strings.TrimSpace(m[1])
	}
	if m := totalHTPattern.FindStringSubmatch(text); m != nil {
		out[model.FieldTotalHT] = m[1]
	}
	if m := totalTTCPattern.FindStringSubmatch(text); m != nil {
		out[model.FieldTotalTTC] = m[1]
	}

	return out
}

// pageText concatenates the literal strings of every page content
// stream. Good enough for label/value scans on machine-generated
// invoices; scanned images yield nothing and push callers to the
// deep extractor.
func pageText(pdfData []byte) (string, error) {
	conf := pdfmodel.NewDefaultConfiguration()

	pdfCtx, err := api.ReadContext(bytes.NewReader(pdfData), conf)
	if err != nil {
		return "", err
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return "", err
	}

	var sb strings.Builder
	for page := 1; page <= pdfCtx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(pdfCtx, page)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		for _, m := range literalPattern.FindAllSubmatch(content, -1) {
			sb.Write(unescapeLiteral(m[1]))
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}

func unescapeLiteral(s []byte) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, s[i])
			}
			continue
		}
		out = append(out, s[i])
	}
	return out
}
