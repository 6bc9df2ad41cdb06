// Package cii assembles UN/CEFACT Cross Industry Invoice documents
// for the Factur-X MINIMUM and BASIC profiles. Documents are built on
// an element tree so every caller-supplied string is escaped on
// serialization.
package cii

// CII namespace URIs, bound to fixed prefixes at the document root
const (
	NamespaceRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NamespaceRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NamespaceUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// Guideline identifiers per profile
const (
	GuidelineMinimum = "urn:factur-x.eu:1p0:minimum"
	GuidelineBasic   = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"
)

// Fixed vocabulary constants
const (
	BusinessProcessID = "A1"  // BT-23, business process context
	DateFormatCode    = "102" // CCYYMMDD
	UnitCodePiece     = "C62" // UN/ECE rec 20, "one"
	TaxTypeVAT        = "VAT"
	TaxCategoryStd    = "S" // standard rate
	VATSchemeID       = "VA"
	LegalSchemeSIRET  = "0002" // ISO 6523 ICD for SIRET
	CurrencyEUR       = "EUR"
)

// issueDateLayout is the Go layout producing 8-digit YYYYMMDD strings
const issueDateLayout = "20060102"
