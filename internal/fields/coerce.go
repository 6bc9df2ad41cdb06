// Package fields coerces untrusted extracted invoice fields into the
// typed values the document builders expect. Extraction output is
// best-effort: keys may be missing, amounts may use comma decimal
// separators, dates arrive in several layouts. Coercion never fails
// hard — unusable values fall back to documented defaults and a
// warning is recorded.
package fields

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/money"
)

// DefaultVATRate is applied when no rate can be derived from the
// extracted HT/TTC pair (French standard rate)
var DefaultVATRate = decimal.RequireFromString("20.00")

// dateLayouts are tried in order when parsing extracted dates
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"20060102",
}

// Invoice holds the typed result of coercing an extracted field map
type Invoice struct {
	Header   model.Header
	Buyer    model.Party
	Seller   model.Party // name only; registrations come from the operator context
	NetTotal decimal.Decimal
	VATRate  decimal.Decimal
	Warnings []string
}

// ParseDate parses an extracted date string, trying the known layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, model.NewCoercionError(model.FieldInvoiceDate, s, "empty date", nil)
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, model.NewCoercionError(model.FieldInvoiceDate, s, "unrecognized date layout", lastErr)
}

// ParseAmount parses an extracted monetary string. Comma decimal
// separators are normalized, surrounding whitespace stripped.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return money.Zero, model.NewCoercionError(field, s, "empty amount", nil)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return money.Zero, model.NewCoercionError(field, s, "not a decimal", err)
	}
	return d, nil
}

// Coerce converts an extracted field map into typed builder inputs.
// Defaults: net total 0, issue date today, VAT rate 20.00 unless a
// rate is implied by a consistent HT/TTC pair.
func Coerce(f model.Fields, today time.Time) Invoice {
	out := Invoice{
		Header: model.Header{
			InvoiceNumber: strings.TrimSpace(f.Get(model.FieldInvoiceNumber)),
			Currency:      "EUR",
		},
		Seller:  model.Party{Name: strings.TrimSpace(f.Get(model.FieldSellerName))},
		Buyer:   model.Party{Name: strings.TrimSpace(f.Get(model.FieldBuyerName))},
		VATRate: DefaultVATRate,
	}

	if d, err := ParseDate(f.Get(model.FieldInvoiceDate)); err == nil {
		out.Header.IssueDate = d
	} else {
		out.Header.IssueDate = today
		if f.Has(model.FieldInvoiceDate) {
			out.Warnings = append(out.Warnings, err.Error())
		}
	}

	net, err := ParseAmount(model.FieldTotalHT, f.Get(model.FieldTotalHT))
	if err != nil {
		net = money.Zero
		if f.Has(model.FieldTotalHT) {
			out.Warnings = append(out.Warnings, err.Error())
		}
	}
	out.NetTotal = net

	if f.Has(model.FieldTotalTTC) {
		if gross, err := ParseAmount(model.FieldTotalTTC, f.Get(model.FieldTotalTTC)); err == nil {
			if rate, ok := money.ImpliedRate(net, gross); ok {
				out.VATRate = rate
			}
		} else {
			out.Warnings = append(out.Warnings, err.Error())
		}
	}

	return out
}
