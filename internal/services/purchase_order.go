package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/common/zoho"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

const StreamBills = "Bills"

// purchaseOrderProcessor writes bills as purchase orders.
type purchaseOrderProcessor service

var _ Processor = (*purchaseOrderProcessor)(nil)

func (p purchaseOrderProcessor) Stream() string {
	return StreamBills
}

func (p purchaseOrderProcessor) Preprocess(ctx context.Context, raw json.RawMessage) (sub Submission, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var record models.BillRecord
	if err = decodeRecord(raw, &record); err != nil {
		return Submission{}, err
	}

	// vendorName is only looked up without a vendorId, otherwise vendorNum replaces vendorId
	vendorID := record.VendorID.String()
	switch {
	case vendorID == "" && record.VendorName != "":
		var reason string
		vendorID, reason, err = p.srv.VendorResolver.ResolveWithPolicy(ctx, record.VendorName)
		if err != nil {
			return Submission{}, err
		}
		if reason != "" {
			return skip(reason), nil
		}
	case !record.VendorNum.IsEmpty():
		vendorID = record.VendorNum.String()
	}

	if len(record.LineItems) == 0 {
		xlog.Info(ctx, "[SINK]", xlog.String("stream", StreamBills), xlog.String("message", "skipping bill with no line items"))
		return skip("bill has no line items"), nil
	}

	lines, err := p.srv.LineItem.NormalizeBillLines(ctx, record.LineItems)
	if err != nil {
		return Submission{}, err
	}

	return Submission{
		Payload: models.PurchaseOrderPayload{
			VendorID:            vendorID,
			ReferenceNumber:     record.ID.String(),
			PurchaseOrderNumber: record.BillNum.String(),
			Date:                record.CreatedAt.String(),
			CurrencyCode:        record.Currency,
			LineItems:           lines,
		},
	}, nil
}

func (p purchaseOrderProcessor) Upsert(ctx context.Context, sub Submission) (models.UpsertOutcome, error) {
	if sub.Skipped() {
		return models.NewUpsertOutcome("", false), nil
	}

	payload, err := payloadAs[models.PurchaseOrderPayload](sub)
	if err != nil {
		return models.UpsertOutcome{}, err
	}

	return createPurchaseOrder(ctx, p.srv.zohoClient, StreamBills, payload)
}

// createPurchaseOrder posts the payload and requires purchaseorder.purchaseorder_id in the response.
func createPurchaseOrder(ctx context.Context, client zoho.Client, stream string, payload any) (models.UpsertOutcome, error) {
	res, err := client.Post(ctx, zoho.PathPurchaseOrders, nil, payload)
	if err != nil {
		return models.UpsertOutcome{}, err
	}

	var body models.ZohoPurchaseOrderResponse
	if err = json.Unmarshal(res.Body, &body); err != nil {
		return models.UpsertOutcome{}, fmt.Errorf("error unmarshal response: %w", err)
	}

	if body.PurchaseOrder == nil || body.PurchaseOrder.PurchaseOrderID.IsEmpty() {
		return models.UpsertOutcome{}, fmt.Errorf("%w: purchaseorder.purchaseorder_id", common.ErrMissingRemoteID)
	}

	id := body.PurchaseOrder.PurchaseOrderID.String()
	xlog.Info(ctx, "[SINK]", xlog.String("message", fmt.Sprintf("%s created with id: %s", stream, id)))

	return models.NewUpsertOutcome(id, true), nil
}
