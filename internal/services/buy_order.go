package services

import (
	"context"
	"encoding/json"

	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/models"
	"github.com/datafocus/go-inventory-sink/internal/monitoring"
)

const StreamBuyOrders = "BuyOrders"

type buyOrderProcessor service

var _ Processor = (*buyOrderProcessor)(nil)

func (b buyOrderProcessor) Stream() string {
	return StreamBuyOrders
}

func (b buyOrderProcessor) Preprocess(ctx context.Context, raw json.RawMessage) (sub Submission, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var record models.BuyOrderRecord
	if err = decodeRecord(raw, &record); err != nil {
		return Submission{}, err
	}

	payload := models.BuyOrderPayload{
		Date:            record.TransactionDate.String(),
		ReferenceNumber: record.ID.String(),
	}

	if record.SupplierName != "" {
		vendorID, reason, err := b.srv.VendorResolver.ResolveWithPolicy(ctx, record.SupplierName)
		if err != nil {
			return Submission{}, err
		}
		if reason != "" {
			return skip(reason), nil
		}
		payload.VendorID = vendorID
	}

	payload.LineItems = b.srv.LineItem.NormalizeBuyOrderLines(record.LineItems)
	if len(payload.LineItems) == 0 {
		xlog.Info(ctx, "[SINK]", xlog.String("stream", StreamBuyOrders), xlog.String("message", "skipping order with no line items"))
		return skip("order has no line items"), nil
	}

	return Submission{Payload: payload}, nil
}

func (b buyOrderProcessor) Upsert(ctx context.Context, sub Submission) (models.UpsertOutcome, error) {
	if sub.Skipped() {
		return models.NewUpsertOutcome("", false), nil
	}

	payload, err := payloadAs[models.BuyOrderPayload](sub)
	if err != nil {
		return models.UpsertOutcome{}, err
	}

	return createPurchaseOrder(ctx, b.srv.zohoClient, StreamBuyOrders, payload)
}
