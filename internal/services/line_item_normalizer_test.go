package services_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/models"
)

func decimalPtr(t *testing.T, v string) *models.Decimal {
	t.Helper()
	d, err := models.NewDecimal(v)
	require.NoError(t, err)
	return models.NewDecimalPtr(d)
}

func TestLineItemNormalizer_ResolveProductID(t *testing.T) {
	catalog := []models.ZohoItem{
		{ItemID: "i1", Name: "Widget"},
		{ItemID: "i2", Name: "Widgets"},
	}

	testCases := []struct {
		name        string
		productName string
		doMock      func(h testServiceHelper)
		want        string
		wantErr     error
	}{
		{
			name:        "exact name wins over close names",
			productName: "Widget",
			doMock: func(h testServiceHelper) {
				h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Widget").Return(catalog, nil)
			},
			want: "i1",
		},
		{
			name:        "close name above cutoff",
			productName: "Widgetz",
			doMock: func(h testServiceHelper) {
				h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Widgetz").Return(catalog[1:], nil)
			},
			want: "i2",
		},
		{
			name:        "no candidate clears the cutoff",
			productName: "Gadget",
			doMock: func(h testServiceHelper) {
				h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Gadget").Return(catalog, nil)
			},
			wantErr: common.ErrProductNotMatched,
		},
		{
			name:        "empty catalog",
			productName: "Gadget",
			doMock: func(h testServiceHelper) {
				h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Gadget").Return(nil, nil)
			},
			wantErr: common.ErrProductNotMatched,
		},
		{
			name:        "no product name",
			productName: "",
			wantErr:     common.ErrProductNotMatched,
		},
		{
			name:        "search failure",
			productName: "Widget",
			doMock: func(h testServiceHelper) {
				h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Widget").Return(nil, common.ErrUnexpectedStatus)
			},
			wantErr: common.ErrUnexpectedStatus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := serviceTestHelper(t)
			if tc.doMock != nil {
				tc.doMock(h)
			}

			got, err := h.services.LineItem.ResolveProductID(context.Background(), tc.productName)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLineItemNormalizer_NormalizeBillLines(t *testing.T) {
	h := serviceTestHelper(t)
	h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Widget").Return([]models.ZohoItem{
		{ItemID: "i1", Name: "Widget"},
	}, nil).Times(1)

	got, err := h.services.LineItem.NormalizeBillLines(context.Background(), []models.BillLine{
		{ProductID: "p9", ProductName: "Bolt", Quantity: decimalPtr(t, "4")},
		{
			ProductName:    "Widget",
			Quantity:       decimalPtr(t, "2"),
			UnitPrice:      decimalPtr(t, "9.99"),
			DiscountAmount: decimalPtr(t, "1"),
			TaxCode:        "GST",
			Description:    "blue",
		},
	})
	require.NoError(t, err)

	want := []models.PurchaseOrderLineItem{
		{ItemID: "p9", Name: "Bolt", Quantity: decimalPtr(t, "4")},
		{
			ItemID:      "i1",
			Name:        "Widget",
			Quantity:    decimalPtr(t, "2"),
			UnitPrice:   decimalPtr(t, "9.99"),
			Discount:    decimalPtr(t, "1"),
			TaxName:     "GST",
			Description: "blue",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeBillLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestLineItemNormalizer_NormalizeBillLines_SearchesEachLine(t *testing.T) {
	h := serviceTestHelper(t)
	h.mockZohoClient.EXPECT().SearchItems(gomockAny, "Widget").Return([]models.ZohoItem{
		{ItemID: "i1", Name: "Widget"},
	}, nil).Times(2)

	got, err := h.services.LineItem.NormalizeBillLines(context.Background(), []models.BillLine{
		{ProductName: "Widget", Quantity: decimalPtr(t, "1")},
		{ProductName: "Widget", Quantity: decimalPtr(t, "5")},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ItemID)
	assert.Equal(t, "i1", got[1].ItemID)
}

func TestLineItemNormalizer_NormalizeAssemblyLines(t *testing.T) {
	lines := []models.AssemblyLine{
		{PartProductRemoteID: "c1", PartProductName: "Screw", PartQuantity: decimalPtr(t, "8"), AccountID: "acc-1"},
		{PartProductRemoteID: "c2", PartProductName: "Plate", PartQuantity: decimalPtr(t, "1")},
	}

	t.Run("with export warehouse", func(t *testing.T) {
		h := serviceTestHelper(t, withWarehouse("wh-1"))

		got := h.services.LineItem.NormalizeAssemblyLines(lines)
		require.Len(t, got, 2)
		assert.Equal(t, "wh-1", got[0].WarehouseID)
		assert.Equal(t, "wh-1", got[1].WarehouseID)
		assert.Equal(t, "acc-1", got[0].AccountID)
		assert.Empty(t, got[1].AccountID)
		assert.Equal(t, "c2", got[1].ItemID)
	})

	t.Run("without export warehouse", func(t *testing.T) {
		h := serviceTestHelper(t)

		got := h.services.LineItem.NormalizeAssemblyLines(lines)
		require.Len(t, got, 2)
		assert.Empty(t, got[0].WarehouseID)
	})
}

func TestLineItemNormalizer_NormalizeBuyOrderLines(t *testing.T) {
	h := serviceTestHelper(t)

	got := h.services.LineItem.NormalizeBuyOrderLines([]models.BuyOrderLine{
		{Quantity: decimalPtr(t, "2"), ProductRemoteID: "p1"},
		{Quantity: decimalPtr(t, "3"), ProductRemoteID: "p2"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ItemID)
	assert.Equal(t, "p2", got[1].ItemID)
	assert.True(t, got[1].Quantity.Equal(decimalPtr(t, "3").Decimal))
}
