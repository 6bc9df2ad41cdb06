package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile identifies the Factur-X compliance profile of a document
type Profile string

const (
	ProfileMinimum Profile = "minimum"
	ProfileBasic   Profile = "basic"
)

// Document type codes (UNTDID 1001)
const (
	// TypeCodeCommercialInvoice is the only document type in scope
	TypeCodeCommercialInvoice = "380"
)

// Header carries document-level identity fields.
// Constructed fresh per generation call, never mutated by builders.
type Header struct {
	InvoiceNumber string
	IssueDate     time.Time
	Currency      string // fixed "EUR" in current scope
}

// Party is a trade party (seller or buyer).
// LegalID is a SIRET-equivalent registration number, VATID the tax
// registration tagged with scheme "VA". Both optional for the buyer.
type Party struct {
	Name    string
	LegalID string
	VATID   string
}

// Line is a raw invoice line as supplied by the caller.
// The line ordinal is assigned at build time, not here.
type Line struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Summary holds the header-level monetary figures of a generated
// document, every field quantized to 2 decimal places.
type Summary struct {
	NetTotal   decimal.Decimal
	TaxRate    decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Fields is the untrusted best-effort field map produced by
// extraction. Every value is an unvalidated string; missing keys mean
// the extractor found nothing.
type Fields map[string]string

// Well-known extraction field keys
const (
	FieldInvoiceNumber = "invoice_number"
	FieldInvoiceDate   = "invoice_date"
	FieldSellerName    = "seller_name"
	FieldBuyerName     = "buyer_name"
	FieldTotalHT       = "total_ht"
	FieldTotalTTC      = "total_ttc"
	FieldCurrency      = "currency"
)

// Get returns the value for key, or empty string
func (f Fields) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Has reports whether key is present and non-empty
func (f Fields) Has(key string) bool {
	return f.Get(key) != ""
}
