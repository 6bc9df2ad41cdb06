package cii

import (
	"github.com/beevik/etree"

	"github.com/rezonia/facturx-studio/internal/model"
)

// newDocument creates the CrossIndustryInvoice skeleton shared by both
// profiles: XML declaration, root element with the three namespace
// prefixes, and the ExchangedDocumentContext / ExchangedDocument
// sections. Returns the document and the root element.
func newDocument(header model.Header, guidelineID string, withBusinessProcess bool) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", NamespaceRSM)
	root.CreateAttr("xmlns:ram", NamespaceRAM)
	root.CreateAttr("xmlns:udt", NamespaceUDT)

	ctx := root.CreateElement("rsm:ExchangedDocumentContext")
	if withBusinessProcess {
		bp := ctx.CreateElement("ram:BusinessProcessSpecifiedDocumentContextParameter")
		bp.CreateElement("ram:ID").SetText(BusinessProcessID)
	}
	guideline := ctx.CreateElement("ram:GuidelineSpecifiedDocumentContextParameter")
	guideline.CreateElement("ram:ID").SetText(guidelineID)

	exDoc := root.CreateElement("rsm:ExchangedDocument")
	exDoc.CreateElement("ram:ID").SetText(header.InvoiceNumber)
	exDoc.CreateElement("ram:TypeCode").SetText(model.TypeCodeCommercialInvoice)

	issue := exDoc.CreateElement("ram:IssueDateTime")
	dt := issue.CreateElement("udt:DateTimeString")
	dt.CreateAttr("format", DateFormatCode)
	dt.SetText(header.IssueDate.Format(issueDateLayout))

	return doc, root
}

// writeParty emits a trade party block. The name is always emitted,
// even when empty (schema validation downstream is authoritative for
// business completeness). Seller registration blocks are emitted
// unconditionally; buyer registrations (includeEmpty false) are
// omitted entirely when blank, never emitted as empty elements.
func writeParty(parent *etree.Element, tag string, p model.Party, legalSchemeID string, includeEmpty bool) {
	party := parent.CreateElement(tag)
	party.CreateElement("ram:Name").SetText(p.Name)

	if includeEmpty || p.LegalID != "" {
		org := party.CreateElement("ram:SpecifiedLegalOrganization")
		id := org.CreateElement("ram:ID")
		if legalSchemeID != "" {
			id.CreateAttr("schemeID", legalSchemeID)
		}
		id.SetText(p.LegalID)
	}

	if includeEmpty || p.VATID != "" {
		tax := party.CreateElement("ram:SpecifiedTaxRegistration")
		id := tax.CreateElement("ram:ID")
		id.CreateAttr("schemeID", VATSchemeID)
		id.SetText(p.VATID)
	}
}

// serialize renders the document as indented UTF-8 bytes
func serialize(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	return doc.WriteToBytes()
}
