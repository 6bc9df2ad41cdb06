package fields_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx-studio/internal/fields"
	"github.com/rezonia/facturx-studio/internal/model"
)

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"iso", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"slashes", "2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"french order", "15-03-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"french slashes", "15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"compact", "20240315", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"whitespace", "  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fields.ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *model.CoercionError
				assert.ErrorAs(t, err, &cerr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "100.00", "100.00", false},
		{"comma separator", "1234,56", "1234.56", false},
		{"integer", "42", "42", false},
		{"whitespace", " 99.99 ", "99.99", false},
		{"empty", "", "", true},
		{"garbage", "cent euros", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fields.ParseAmount(model.FieldTotalHT, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got.String())
		})
	}
}

func TestCoerce_FullFields(t *testing.T) {
	f := model.Fields{
		model.FieldInvoiceNumber: "INV-042",
		model.FieldInvoiceDate:   "2024-03-15",
		model.FieldSellerName:    "Acme",
		model.FieldBuyerName:     "Client Co",
		model.FieldTotalHT:       "100.00",
		model.FieldTotalTTC:      "120.00",
	}

	inv := fields.Coerce(f, today)

	assert.Equal(t, "INV-042", inv.Header.InvoiceNumber)
	assert.Equal(t, "EUR", inv.Header.Currency)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), inv.Header.IssueDate)
	assert.Equal(t, "Acme", inv.Seller.Name)
	assert.Equal(t, "Client Co", inv.Buyer.Name)
	assert.True(t, inv.NetTotal.Equal(decimal.RequireFromString("100.00")))
	// Rate implied from the HT/TTC pair
	assert.True(t, inv.VATRate.Equal(decimal.RequireFromString("20.00")),
		"expected implied rate 20.00, got %s", inv.VATRate.String())
	assert.Empty(t, inv.Warnings)
}

func TestCoerce_EmptyMapDefaults(t *testing.T) {
	inv := fields.Coerce(model.Fields{}, today)

	assert.Equal(t, "", inv.Header.InvoiceNumber)
	assert.Equal(t, today, inv.Header.IssueDate)
	assert.True(t, inv.NetTotal.IsZero())
	assert.True(t, inv.VATRate.Equal(fields.DefaultVATRate))
	assert.Empty(t, inv.Warnings)
}

func TestCoerce_NilMap(t *testing.T) {
	inv := fields.Coerce(nil, today)
	assert.Equal(t, today, inv.Header.IssueDate)
	assert.True(t, inv.NetTotal.IsZero())
}

func TestCoerce_BadValuesWarnAndDefault(t *testing.T) {
	f := model.Fields{
		model.FieldInvoiceDate: "soon",
		model.FieldTotalHT:     "lots",
	}

	inv := fields.Coerce(f, today)

	assert.Equal(t, today, inv.Header.IssueDate)
	assert.True(t, inv.NetTotal.IsZero())
	assert.Len(t, inv.Warnings, 2)
}

func TestCoerce_CommaAmounts(t *testing.T) {
	f := model.Fields{
		model.FieldTotalHT:  "1000,50",
		model.FieldTotalTTC: "1200,60",
	}

	inv := fields.Coerce(f, today)

	assert.True(t, inv.NetTotal.Equal(decimal.RequireFromString("1000.50")))
	assert.True(t, inv.VATRate.Equal(decimal.RequireFromString("20.00")),
		"expected implied rate 20.00, got %s", inv.VATRate.String())
}

func TestCoerce_InconsistentPairKeepsDefaultRate(t *testing.T) {
	// Gross below net cannot imply a rate
	f := model.Fields{
		model.FieldTotalHT:  "100.00",
		model.FieldTotalTTC: "90.00",
	}

	inv := fields.Coerce(f, today)
	assert.True(t, inv.VATRate.Equal(fields.DefaultVATRate))
}
