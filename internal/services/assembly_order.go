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

const StreamAssemblyOrders = "AssemblyOrders"

type assemblyOrderProcessor service

var _ Processor = (*assemblyOrderProcessor)(nil)

func (a assemblyOrderProcessor) Stream() string {
	return StreamAssemblyOrders
}

func (a assemblyOrderProcessor) Preprocess(ctx context.Context, raw json.RawMessage) (sub Submission, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	var record models.AssemblyOrderRecord
	if err = decodeRecord(raw, &record); err != nil {
		return Submission{}, err
	}

	payload := models.BundlePayload{
		Date:              record.TransactionDate.String(),
		CompositeItemID:   record.ProductRemoteID.String(),
		CompositeItemName: record.ProductName,
		QuantityToBundle:  record.Quantity,
		IsCompleted:       record.IsCompleted,
		ReferenceNumber:   record.ID.String(),
		LineItems:         a.srv.LineItem.NormalizeAssemblyLines(record.LineItems),
	}

	if len(payload.LineItems) == 0 {
		xlog.Info(ctx, "[SINK]", xlog.String("stream", StreamAssemblyOrders), xlog.String("message", "skipping assembly order with no line items"))
		return skip("assembly order has no line items"), nil
	}

	return Submission{Payload: payload}, nil
}

// Upsert reports an unreadable 2xx body as an unsuccessful outcome instead of an error.
func (a assemblyOrderProcessor) Upsert(ctx context.Context, sub Submission) (models.UpsertOutcome, error) {
	if sub.Skipped() {
		return models.NewUpsertOutcome("", false), nil
	}

	payload, err := payloadAs[models.BundlePayload](sub)
	if err != nil {
		return models.UpsertOutcome{}, err
	}

	res, err := a.srv.zohoClient.Post(ctx, zoho.PathBundles, map[string]string{
		"ignore_auto_number_generation": "true",
	}, payload)
	if err != nil {
		return models.UpsertOutcome{}, err
	}

	var body models.ZohoBundleResponse
	err = json.Unmarshal(res.Body, &body)
	if err == nil && (body.Bundle == nil || body.Bundle.BundleID.IsEmpty()) {
		err = fmt.Errorf("%w: bundle.bundle_id", common.ErrMissingRemoteID)
	}
	if err != nil {
		xlog.Error(ctx, "[SINK]",
			xlog.String("stream", StreamAssemblyOrders),
			xlog.String("message", "failed to extract bundle id from response"),
			xlog.String("response", string(res.Body)),
			xlog.Err(err))
		return models.NewUpsertOutcome("", false), nil
	}

	id := body.Bundle.BundleID.String()
	xlog.Info(ctx, "[SINK]", xlog.String("message", fmt.Sprintf("%s created with id: %s", StreamAssemblyOrders, id)))

	return models.NewUpsertOutcome(id, true), nil
}
