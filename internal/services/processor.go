package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/datafocus/go-inventory-sink/internal/common"
	"github.com/datafocus/go-inventory-sink/internal/models"
)

// Processor turns records of one stream into a remote create call.
// Preprocess never calls the create endpoint, so a skipped record costs no submission.
type Processor interface {
	Stream() string

	// Preprocess decodes the raw record and builds its payload. A nil payload means skip.
	Preprocess(ctx context.Context, record json.RawMessage) (Submission, error)

	// Upsert submits the payload built by Preprocess.
	Upsert(ctx context.Context, submission Submission) (models.UpsertOutcome, error)
}

// Submission is the output of Preprocess.
type Submission struct {
	Payload    any
	SkipReason string
}

func skip(reason string) Submission {
	return Submission{SkipReason: reason}
}

func (s Submission) Skipped() bool {
	return s.Payload == nil
}

// MapProcessor is used to get the processor of a stream.
type MapProcessor map[string]Processor

func NewMapProcessor(processors ...Processor) MapProcessor {
	m := make(MapProcessor, len(processors))
	for _, p := range processors {
		m[p.Stream()] = p
	}
	return m
}

// GetProcessor matches the stream name exactly first, then in its CamelCase form
// so "buy_orders" reaches "BuyOrders".
func (m MapProcessor) GetProcessor(stream string) (Processor, error) {
	if p, ok := m[stream]; ok {
		return p, nil
	}

	if p, ok := m[strcase.ToCamel(stream)]; ok {
		return p, nil
	}

	return nil, fmt.Errorf("%w: %s not found", common.ErrUnableGetProcessor, stream)
}

func decodeRecord(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty record", common.ErrInvalidRecord)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidRecord, err)
	}

	return nil
}

func payloadAs[T any](submission Submission) (T, error) {
	payload, ok := submission.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unexpected payload %T", common.ErrInvalidRecord, submission.Payload)
	}
	return payload, nil
}
