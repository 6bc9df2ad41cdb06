package server

import (
	"github.com/shopspring/decimal"
)

// PartyPayload is a trade party in generate requests
type PartyPayload struct {
	Name  string `json:"name" binding:"required"`
	SIRET string `json:"siret,omitempty"`
	VAT   string `json:"vat,omitempty"`
}

// LinePayload is one invoice line in BASIC generate requests
type LinePayload struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// GenerateRequest is the body of the generate endpoints. Amounts are
// decimal strings or numbers; the date uses ISO 8601 (YYYY-MM-DD).
type GenerateRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	InvoiceDate   string          `json:"invoice_date" binding:"required"`
	Seller        PartyPayload    `json:"seller" binding:"required"`
	Buyer         PartyPayload    `json:"buyer" binding:"required"`
	NetTotal      decimal.Decimal `json:"net_total"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	Lines         []LinePayload   `json:"lines,omitempty"`
}

// ScanResponse is the response of the scan endpoint
type ScanResponse struct {
	Fields   map[string]string `json:"fields"`
	Method   string            `json:"method"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ValidationResponse is the response of the validate endpoint
type ValidationResponse struct {
	Valid      bool   `json:"valid"`
	Profile    string `json:"profile"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error    string   `json:"error"`
	Warnings []string `json:"warnings,omitempty"`
}
