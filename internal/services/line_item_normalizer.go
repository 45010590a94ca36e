package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/fuzzy"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

const productMatchCutoff = 0.8

// LineItemService turns inbound line items into the line items of each outbound payload.
// Output keeps one entry per inbound line, in order.
type LineItemService interface {
	NormalizeBillLines(ctx context.Context, lines []models.BillLine) ([]models.PurchaseOrderLineItem, error)
	NormalizeBuyOrderLines(lines []models.BuyOrderLine) []models.BuyOrderLineItem
	NormalizeAssemblyLines(lines []models.AssemblyLine) []models.BundleLineItem

	// ResolveProductID fuzzy matches productName against the item catalog.
	ResolveProductID(ctx context.Context, productName string) (string, error)
}

type lineItemNormalizer service

var _ LineItemService = (*lineItemNormalizer)(nil)

func (l lineItemNormalizer) NormalizeBillLines(ctx context.Context, lines []models.BillLine) (res []models.PurchaseOrderLineItem, err error) {
	res = make([]models.PurchaseOrderLineItem, 0, len(lines))
	for i, line := range lines {
		itemID := line.ProductID.String()
		if itemID == "" {
			itemID, err = l.ResolveProductID(ctx, line.ProductName)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
		}

		res = append(res, models.PurchaseOrderLineItem{
			ItemID:      itemID,
			Name:        line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Discount:    line.DiscountAmount,
			TaxName:     line.TaxCode,
			Description: line.Description,
		})
	}

	return res, nil
}

func (l lineItemNormalizer) NormalizeBuyOrderLines(lines []models.BuyOrderLine) []models.BuyOrderLineItem {
	res := make([]models.BuyOrderLineItem, 0, len(lines))
	for _, line := range lines {
		res = append(res, models.BuyOrderLineItem{
			Quantity: line.Quantity,
			ItemID:   line.ProductRemoteID.String(),
		})
	}

	return res
}

func (l lineItemNormalizer) NormalizeAssemblyLines(lines []models.AssemblyLine) []models.BundleLineItem {
	warehouseID := l.srv.conf.Zoho.ExportWarehouseID

	res := make([]models.BundleLineItem, 0, len(lines))
	for _, line := range lines {
		res = append(res, models.BundleLineItem{
			ItemID:           line.PartProductRemoteID.String(),
			Name:             line.PartProductName,
			QuantityConsumed: line.PartQuantity,
			WarehouseID:      warehouseID,
			AccountID:        line.AccountID.String(),
		})
	}

	return res
}

func (l lineItemNormalizer) ResolveProductID(ctx context.Context, productName string) (itemID string, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(
			xlog.String("productName", productName),
			xlog.String("itemId", itemID),
		))
	}()

	if strings.TrimSpace(productName) == "" {
		return "", fmt.Errorf("%w: line has neither product id nor product name", common.ErrProductNotMatched)
	}

	items, err := l.srv.zohoClient.SearchItems(ctx, productName)
	if err != nil {
		return "", fmt.Errorf("failed search item %s: %w", productName, err)
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	match, ok, err := fuzzy.Best(productName, names, productMatchCutoff)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrProductNotMatched, productName)
	}

	// first catalog item carrying exactly the matched name
	for _, item := range items {
		if item.Name == match.Candidate {
			return item.ItemID.String(), nil
		}
	}

	return "", fmt.Errorf("%w: %s", common.ErrProductNotMatched, productName)
}
