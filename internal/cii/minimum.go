package cii

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/money"
)

// MinimumBuilder produces Factur-X MINIMUM profile documents:
// document identity, parties and a single aggregate monetary summary,
// no line items.
type MinimumBuilder struct{}

// NewMinimumBuilder creates a new MINIMUM profile builder
func NewMinimumBuilder() *MinimumBuilder {
	return &MinimumBuilder{}
}

// Profile returns the compliance profile this builder emits
func (b *MinimumBuilder) Profile() model.Profile {
	return model.ProfileMinimum
}

// Build serializes a MINIMUM profile invoice. Inputs are assumed
// well-typed; the builder guarantees well-formed XML, not business
// completeness — an empty seller name yields a document the
// downstream XSD validator will reject.
func (b *MinimumBuilder) Build(header model.Header, seller, buyer model.Party, netTotal, vatRatePercent decimal.Decimal) ([]byte, error) {
	netTotal = money.Quantize(netTotal)
	vatRatePercent = money.Quantize(vatRatePercent)

	taxTotal := money.Tax(netTotal, vatRatePercent)
	grandTotal := money.Add(netTotal, taxTotal)

	doc, root := newDocument(header, GuidelineMinimum, true)

	txn := root.CreateElement("rsm:SupplyChainTradeTransaction")

	agreement := txn.CreateElement("ram:ApplicableHeaderTradeAgreement")
	writeParty(agreement, "ram:SellerTradeParty", seller, "", true)
	writeParty(agreement, "ram:BuyerTradeParty", buyer, "", false)

	// Structurally required, contentless
	txn.CreateElement("ram:ApplicableHeaderTradeDelivery")

	settlement := txn.CreateElement("ram:ApplicableHeaderTradeSettlement")
	settlement.CreateElement("ram:InvoiceCurrencyCode").SetText(currencyOrEUR(header))

	writeSummation(settlement, summation{
		taxBasis:   netTotal,
		taxTotal:   taxTotal,
		grandTotal: grandTotal,
		duePayable: grandTotal,
	})

	return serialize(doc)
}

// summation holds the header monetary figures, already quantized
type summation struct {
	lineTotal    decimal.Decimal
	hasLineTotal bool
	taxBasis     decimal.Decimal
	taxTotal     decimal.Decimal
	grandTotal   decimal.Decimal
	duePayable   decimal.Decimal
}

func writeSummation(settlement *etree.Element, s summation) {
	summ := settlement.CreateElement("ram:SpecifiedTradeSettlementHeaderMonetarySummation")

	if s.hasLineTotal {
		summ.CreateElement("ram:LineTotalAmount").SetText(money.Format(s.lineTotal))
	}
	summ.CreateElement("ram:TaxBasisTotalAmount").SetText(money.Format(s.taxBasis))

	tax := summ.CreateElement("ram:TaxTotalAmount")
	tax.CreateAttr("currencyID", CurrencyEUR)
	tax.SetText(money.Format(s.taxTotal))

	summ.CreateElement("ram:GrandTotalAmount").SetText(money.Format(s.grandTotal))
	summ.CreateElement("ram:DuePayableAmount").SetText(money.Format(s.duePayable))
}

func currencyOrEUR(header model.Header) string {
	if header.Currency != "" {
		return header.Currency
	}
	return CurrencyEUR
}
