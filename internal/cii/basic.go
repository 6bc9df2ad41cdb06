package cii

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/money"
)

// BasicBuilder produces Factur-X BASIC profile documents: itemized
// line entries with header totals derived by summation over lines.
// Line totals are the source of truth; the header is never
// independently supplied.
type BasicBuilder struct{}

// NewBasicBuilder creates a new BASIC profile builder
func NewBasicBuilder() *BasicBuilder {
	return &BasicBuilder{}
}

// Profile returns the compliance profile this builder emits
func (b *BasicBuilder) Profile() model.Profile {
	return model.ProfileBasic
}

// processedLine is a line with its build-time ordinal and derived net
type processedLine struct {
	id    int
	name  string
	qty   decimal.Decimal
	price decimal.Decimal
	net   decimal.Decimal
}

// Build serializes a BASIC profile invoice. Line ids are assigned
// 1-based in input order. An empty line slice is substituted with a
// single zero-value placeholder line so the profile's structural
// requirement of at least one line holds even with incomplete
// upstream data.
//
// Per-line nets are accumulated as raw products; only the aggregate
// figures are quantized. Rounding each line before summing can drift
// from the summed-then-rounded figure by a cent, and the header must
// equal the exact sum of the emitted lines.
func (b *BasicBuilder) Build(header model.Header, seller, buyer model.Party, lines []model.Line, vatRatePercent decimal.Decimal) ([]byte, error) {
	vatRatePercent = money.Quantize(vatRatePercent)

	if len(lines) == 0 {
		lines = []model.Line{{
			Name:      "Services",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.Zero,
		}}
	}

	processed := make([]processedLine, 0, len(lines))
	totalNet := money.Zero
	totalTax := money.Zero

	for i, line := range lines {
		net := line.Quantity.Mul(line.UnitPrice)
		processed = append(processed, processedLine{
			id:    i + 1,
			name:  line.Name,
			qty:   line.Quantity,
			price: line.UnitPrice,
			net:   net,
		})
		totalNet = totalNet.Add(net)
		totalTax = totalTax.Add(money.RawTax(net, vatRatePercent))
	}

	totalNet = money.Quantize(totalNet)
	totalTax = money.Quantize(totalTax)
	totalTTC := money.Add(totalNet, totalTax)

	doc, root := newDocument(header, GuidelineBasic, false)

	txn := root.CreateElement("rsm:SupplyChainTradeTransaction")

	for _, line := range processed {
		writeLine(txn, line, vatRatePercent)
	}

	agreement := txn.CreateElement("ram:ApplicableHeaderTradeAgreement")
	writeParty(agreement, "ram:SellerTradeParty", seller, LegalSchemeSIRET, true)
	writeParty(agreement, "ram:BuyerTradeParty", buyer, "", false)

	txn.CreateElement("ram:ApplicableHeaderTradeDelivery")

	settlement := txn.CreateElement("ram:ApplicableHeaderTradeSettlement")
	settlement.CreateElement("ram:InvoiceCurrencyCode").SetText(currencyOrEUR(header))

	// Header-level tax breakdown for the single uniform rate
	tradeTax := settlement.CreateElement("ram:ApplicableTradeTax")
	tradeTax.CreateElement("ram:CalculatedAmount").SetText(money.Format(totalTax))
	tradeTax.CreateElement("ram:TypeCode").SetText(TaxTypeVAT)
	tradeTax.CreateElement("ram:BasisAmount").SetText(money.Format(totalNet))
	tradeTax.CreateElement("ram:CategoryCode").SetText(TaxCategoryStd)
	tradeTax.CreateElement("ram:RateApplicablePercent").SetText(money.Format(vatRatePercent))

	writeSummation(settlement, summation{
		lineTotal:    totalNet,
		hasLineTotal: true,
		taxBasis:     totalNet,
		taxTotal:     totalTax,
		grandTotal:   totalTTC,
		duePayable:   totalTTC,
	})

	return serialize(doc)
}

func writeLine(txn *etree.Element, line processedLine, vatRatePercent decimal.Decimal) {
	item := txn.CreateElement("ram:IncludedSupplyChainTradeLineItem")

	lineDoc := item.CreateElement("ram:AssociatedDocumentLineDocument")
	lineDoc.CreateElement("ram:LineID").SetText(strconv.Itoa(line.id))

	product := item.CreateElement("ram:SpecifiedTradeProduct")
	product.CreateElement("ram:Name").SetText(line.name)

	lineAgreement := item.CreateElement("ram:SpecifiedLineTradeAgreement")
	price := lineAgreement.CreateElement("ram:NetPriceProductTradePrice")
	price.CreateElement("ram:ChargeAmount").SetText(money.Format(line.price))

	lineDelivery := item.CreateElement("ram:SpecifiedLineTradeDelivery")
	qty := lineDelivery.CreateElement("ram:BilledQuantity")
	qty.CreateAttr("unitCode", UnitCodePiece)
	qty.SetText(money.Format(line.qty))

	lineSettlement := item.CreateElement("ram:SpecifiedLineTradeSettlement")
	lineTax := lineSettlement.CreateElement("ram:ApplicableTradeTax")
	lineTax.CreateElement("ram:TypeCode").SetText(TaxTypeVAT)
	lineTax.CreateElement("ram:CategoryCode").SetText(TaxCategoryStd)
	lineTax.CreateElement("ram:RateApplicablePercent").SetText(money.Format(vatRatePercent))

	lineSumm := lineSettlement.CreateElement("ram:SpecifiedTradeSettlementLineMonetarySummation")
	lineSumm.CreateElement("ram:LineTotalAmount").SetText(money.Format(line.net))
}
