package cii_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx-studio/internal/cii"
	"github.com/rezonia/facturx-studio/internal/model"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBasicBuild_ExampleScenario(t *testing.T) {
	b := cii.NewBasicBuilder()

	lines := []model.Line{
		{Name: "Web Design", Quantity: qty("10"), UnitPrice: qty("50")},
		{Name: "Hosting", Quantity: qty("1"), UnitPrice: qty("100")},
	}

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		lines, decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)

	assert.Equal(t, "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic",
		findText(t, doc, "//ram:GuidelineSpecifiedDocumentContextParameter/ram:ID"))

	items := doc.FindElements("//ram:IncludedSupplyChainTradeLineItem")
	require.Len(t, items, 2)

	// Line ids are 1-based in input order
	assert.Equal(t, "1", items[0].FindElement("ram:AssociatedDocumentLineDocument/ram:LineID").Text())
	assert.Equal(t, "2", items[1].FindElement("ram:AssociatedDocumentLineDocument/ram:LineID").Text())

	assert.Equal(t, "Web Design", items[0].FindElement("ram:SpecifiedTradeProduct/ram:Name").Text())
	assert.Equal(t, "500.00", items[0].FindElement(
		"ram:SpecifiedLineTradeSettlement/ram:SpecifiedTradeSettlementLineMonetarySummation/ram:LineTotalAmount").Text())
	assert.Equal(t, "100.00", items[1].FindElement(
		"ram:SpecifiedLineTradeSettlement/ram:SpecifiedTradeSettlementLineMonetarySummation/ram:LineTotalAmount").Text())

	unitQty := items[0].FindElement("ram:SpecifiedLineTradeDelivery/ram:BilledQuantity")
	require.NotNil(t, unitQty)
	assert.Equal(t, "10.00", unitQty.Text())
	assert.Equal(t, "C62", unitQty.SelectAttrValue("unitCode", ""))

	assert.Equal(t, "50.00", items[0].FindElement(
		"ram:SpecifiedLineTradeAgreement/ram:NetPriceProductTradePrice/ram:ChargeAmount").Text())

	// Header tax breakdown
	tradeTax := doc.FindElement("//ram:ApplicableHeaderTradeSettlement/ram:ApplicableTradeTax")
	require.NotNil(t, tradeTax)
	assert.Equal(t, "120.00", tradeTax.FindElement("ram:CalculatedAmount").Text())
	assert.Equal(t, "VAT", tradeTax.FindElement("ram:TypeCode").Text())
	assert.Equal(t, "600.00", tradeTax.FindElement("ram:BasisAmount").Text())
	assert.Equal(t, "S", tradeTax.FindElement("ram:CategoryCode").Text())
	assert.Equal(t, "20.00", tradeTax.FindElement("ram:RateApplicablePercent").Text())

	// Header totals derive from lines
	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "600.00", findText(t, doc, summ+"ram:LineTotalAmount"))
	assert.Equal(t, "600.00", findText(t, doc, summ+"ram:TaxBasisTotalAmount"))
	assert.Equal(t, "120.00", findText(t, doc, summ+"ram:TaxTotalAmount"))
	assert.Equal(t, "720.00", findText(t, doc, summ+"ram:GrandTotalAmount"))
	assert.Equal(t, "720.00", findText(t, doc, summ+"ram:DuePayableAmount"))
}

func TestBasicBuild_EmptyLinesPlaceholder(t *testing.T) {
	b := cii.NewBasicBuilder()

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		nil, decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)

	items := doc.FindElements("//ram:IncludedSupplyChainTradeLineItem")
	require.Len(t, items, 1)

	assert.Equal(t, "Services", items[0].FindElement("ram:SpecifiedTradeProduct/ram:Name").Text())
	assert.Equal(t, "1.00", items[0].FindElement("ram:SpecifiedLineTradeDelivery/ram:BilledQuantity").Text())
	assert.Equal(t, "0.00", items[0].FindElement(
		"ram:SpecifiedLineTradeAgreement/ram:NetPriceProductTradePrice/ram:ChargeAmount").Text())

	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "0.00", findText(t, doc, summ+"ram:LineTotalAmount"))
	assert.Equal(t, "0.00", findText(t, doc, summ+"ram:TaxTotalAmount"))
	assert.Equal(t, "0.00", findText(t, doc, summ+"ram:GrandTotalAmount"))
}

func TestBasicBuild_AggregatesRawProducts(t *testing.T) {
	// Raw per-line products are summed before the aggregate is
	// rounded: three lines of 0.015 sum to 0.045, emitted as 0.05.
	// Rounding each line first would give 0.06.
	b := cii.NewBasicBuilder()

	lines := []model.Line{
		{Name: "A", Quantity: qty("1"), UnitPrice: qty("0.015")},
		{Name: "B", Quantity: qty("1"), UnitPrice: qty("0.015")},
		{Name: "C", Quantity: qty("1"), UnitPrice: qty("0.015")},
	}

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		lines, decimal.RequireFromString("0"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "0.05", findText(t, doc, summ+"ram:LineTotalAmount"))
	assert.Equal(t, "0.05", findText(t, doc, summ+"ram:GrandTotalAmount"))
}

func TestBasicBuild_FractionalQuantities(t *testing.T) {
	b := cii.NewBasicBuilder()

	lines := []model.Line{
		{Name: "Consulting", Quantity: qty("2.5"), UnitPrice: qty("80.40")},
	}

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		lines, decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	// 2.5 * 80.40 = 201.00; tax 40.20; grand 241.20
	assert.Equal(t, "201.00", findText(t, doc, summ+"ram:LineTotalAmount"))
	assert.Equal(t, "40.20", findText(t, doc, summ+"ram:TaxTotalAmount"))
	assert.Equal(t, "241.20", findText(t, doc, summ+"ram:GrandTotalAmount"))
}

func TestBasicBuild_SellerSchemeID(t *testing.T) {
	b := cii.NewBasicBuilder()

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		nil, decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	legal := doc.FindElement("//ram:SellerTradeParty/ram:SpecifiedLegalOrganization/ram:ID")
	require.NotNil(t, legal)
	assert.Equal(t, "0002", legal.SelectAttrValue("schemeID", ""))
	assert.Equal(t, "80258593400018", legal.Text())
}

func TestBasicBuild_Idempotent(t *testing.T) {
	b := cii.NewBasicBuilder()
	lines := []model.Line{{Name: "X", Quantity: qty("3"), UnitPrice: qty("9.99")}}
	rate := decimal.RequireFromString("20")

	first, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"}, lines, rate)
	require.NoError(t, err)
	second, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"}, lines, rate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBasicBuild_NegativeLineAccepted(t *testing.T) {
	// Accepted but discouraged: the builder does not validate business
	// values, only structure
	b := cii.NewBasicBuilder()

	lines := []model.Line{
		{Name: "Credit", Quantity: qty("-1"), UnitPrice: qty("50")},
	}

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		lines, decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "-50.00", findText(t, doc, summ+"ram:LineTotalAmount"))
}
