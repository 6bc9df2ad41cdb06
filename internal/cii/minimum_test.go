package cii_test

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx-studio/internal/cii"
	"github.com/rezonia/facturx-studio/internal/model"
)

func testHeader() model.Header {
	return model.Header{
		InvoiceNumber: "INV-001",
		IssueDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:      "EUR",
	}
}

func testSeller() model.Party {
	return model.Party{
		Name:    "Acme",
		LegalID: "80258593400018",
		VATID:   "FR34802585934",
	}
}

func parseDoc(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

func findText(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	elem := doc.FindElement(path)
	require.NotNil(t, elem, "element not found: %s", path)
	return elem.Text()
}

func TestMinimumBuild_ExampleScenario(t *testing.T) {
	b := cii.NewMinimumBuilder()

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		decimal.RequireFromString("100.00"), decimal.RequireFromString("20.00"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	doc := parseDoc(t, data)

	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "100.00", findText(t, doc, summ+"ram:TaxBasisTotalAmount"))
	assert.Equal(t, "20.00", findText(t, doc, summ+"ram:TaxTotalAmount"))
	assert.Equal(t, "120.00", findText(t, doc, summ+"ram:GrandTotalAmount"))
	assert.Equal(t, "120.00", findText(t, doc, summ+"ram:DuePayableAmount"))

	tax := doc.FindElement(summ + "ram:TaxTotalAmount")
	require.NotNil(t, tax)
	assert.Equal(t, "EUR", tax.SelectAttrValue("currencyID", ""))

	// Document identity
	assert.Equal(t, "INV-001", findText(t, doc, "//rsm:ExchangedDocument/ram:ID"))
	assert.Equal(t, "380", findText(t, doc, "//rsm:ExchangedDocument/ram:TypeCode"))

	dt := doc.FindElement("//ram:IssueDateTime/udt:DateTimeString")
	require.NotNil(t, dt)
	assert.Equal(t, "20240315", dt.Text())
	assert.Equal(t, "102", dt.SelectAttrValue("format", ""))

	// Context constants
	assert.Equal(t, "A1", findText(t, doc, "//ram:BusinessProcessSpecifiedDocumentContextParameter/ram:ID"))
	assert.Equal(t, "urn:factur-x.eu:1p0:minimum",
		findText(t, doc, "//ram:GuidelineSpecifiedDocumentContextParameter/ram:ID"))

	// Seller has both registrations, buyer has neither
	seller := doc.FindElement("//ram:SellerTradeParty")
	require.NotNil(t, seller)
	assert.Equal(t, "Acme", seller.FindElement("ram:Name").Text())
	assert.NotNil(t, seller.FindElement("ram:SpecifiedLegalOrganization"))
	vat := seller.FindElement("ram:SpecifiedTaxRegistration/ram:ID")
	require.NotNil(t, vat)
	assert.Equal(t, "FR34802585934", vat.Text())
	assert.Equal(t, "VA", vat.SelectAttrValue("schemeID", ""))

	buyer := doc.FindElement("//ram:BuyerTradeParty")
	require.NotNil(t, buyer)
	assert.Equal(t, "Client Co", buyer.FindElement("ram:Name").Text())
	assert.Nil(t, buyer.FindElement("ram:SpecifiedLegalOrganization"))
	assert.Nil(t, buyer.FindElement("ram:SpecifiedTaxRegistration"))

	// Structurally required empty delivery section
	assert.NotNil(t, doc.FindElement("//ram:ApplicableHeaderTradeDelivery"))

	assert.Equal(t, "EUR", findText(t, doc, "//ram:InvoiceCurrencyCode"))
}

func TestMinimumBuild_TaxDerivation(t *testing.T) {
	tests := []struct {
		name  string
		net   string
		rate  string
		tax   string
		grand string
	}{
		{"flat 20%", "100.00", "20.00", "20.00", "120.00"},
		{"reduced 5.5%", "99.99", "5.5", "5.50", "105.49"},
		{"zero rate", "250.00", "0", "0.00", "250.00"},
		{"zero net", "0", "20", "0.00", "0.00"},
		{"cent rounding", "10.01", "19.6", "1.96", "11.97"},
	}

	b := cii.NewMinimumBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
				decimal.RequireFromString(tt.net), decimal.RequireFromString(tt.rate))
			require.NoError(t, err)

			doc := parseDoc(t, data)
			summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
			assert.Equal(t, tt.tax, findText(t, doc, summ+"ram:TaxTotalAmount"))
			assert.Equal(t, tt.grand, findText(t, doc, summ+"ram:GrandTotalAmount"))
			assert.Equal(t, findText(t, doc, summ+"ram:GrandTotalAmount"),
				findText(t, doc, summ+"ram:DuePayableAmount"))
		})
	}
}

func TestMinimumBuild_BuyerOptionalFields(t *testing.T) {
	b := cii.NewMinimumBuilder()

	data, err := b.Build(testHeader(), testSeller(),
		model.Party{Name: "Client Co", LegalID: "12345678900011", VATID: "FR00123456789"},
		decimal.RequireFromString("50"), decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	buyer := doc.FindElement("//ram:BuyerTradeParty")
	require.NotNil(t, buyer)
	assert.Equal(t, "12345678900011", buyer.FindElement("ram:SpecifiedLegalOrganization/ram:ID").Text())
	assert.Equal(t, "FR00123456789", buyer.FindElement("ram:SpecifiedTaxRegistration/ram:ID").Text())
}

func TestMinimumBuild_Idempotent(t *testing.T) {
	b := cii.NewMinimumBuilder()
	net := decimal.RequireFromString("100.00")
	rate := decimal.RequireFromString("20.00")

	first, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"}, net, rate)
	require.NoError(t, err)
	second, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"}, net, rate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMinimumBuild_EscapesUserText(t *testing.T) {
	b := cii.NewMinimumBuilder()

	data, err := b.Build(testHeader(), testSeller(),
		model.Party{Name: `Fish & Chips <"Ltd">`},
		decimal.RequireFromString("10"), decimal.RequireFromString("20"))
	require.NoError(t, err)

	// Well-formed despite special characters, round-trips intact
	doc := parseDoc(t, data)
	buyer := doc.FindElement("//ram:BuyerTradeParty/ram:Name")
	require.NotNil(t, buyer)
	assert.Equal(t, `Fish & Chips <"Ltd">`, buyer.Text())
}

func TestMinimumBuild_NegativeInputsAccepted(t *testing.T) {
	// Out of contract but must not fail: the builder only guarantees
	// well-formedness, the downstream validator rejects the rest
	b := cii.NewMinimumBuilder()

	data, err := b.Build(testHeader(), testSeller(), model.Party{Name: "Client Co"},
		decimal.RequireFromString("-100.00"), decimal.RequireFromString("20.00"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	summ := "//ram:SpecifiedTradeSettlementHeaderMonetarySummation/"
	assert.Equal(t, "-100.00", findText(t, doc, summ+"ram:TaxBasisTotalAmount"))
}

func TestMinimumBuild_EmptySellerEmitsEmptyRegistrations(t *testing.T) {
	// Seller registrations are emitted even when blank; business
	// completeness is the validator's concern
	b := cii.NewMinimumBuilder()

	data, err := b.Build(testHeader(), model.Party{Name: "Acme"}, model.Party{Name: "Client Co"},
		decimal.RequireFromString("10"), decimal.RequireFromString("20"))
	require.NoError(t, err)

	doc := parseDoc(t, data)
	seller := doc.FindElement("//ram:SellerTradeParty")
	require.NotNil(t, seller)
	assert.NotNil(t, seller.FindElement("ram:SpecifiedLegalOrganization"))
	assert.NotNil(t, seller.FindElement("ram:SpecifiedTaxRegistration"))
}
