package models

// UpsertOutcome is the result of submitting one payload.
type UpsertOutcome struct {
	ID           string         `json:"id,omitempty"`
	Success      bool           `json:"success"`
	StateUpdates map[string]any `json:"stateUpdates"`
}

func NewUpsertOutcome(id string, success bool) UpsertOutcome {
	return UpsertOutcome{
		ID:           id,
		Success:      success,
		StateUpdates: map[string]any{},
	}
}

// Result is returned for every processed record. Either Outcome is set or Skipped is true.
type Result struct {
	Stream     string         `json:"stream"`
	Outcome    *UpsertOutcome `json:"outcome,omitempty"`
	Skipped    bool           `json:"skipped"`
	SkipReason string         `json:"skipReason,omitempty"`
}

func NewSkippedResult(stream, reason string) Result {
	return Result{
		Stream:     stream,
		Skipped:    true,
		SkipReason: reason,
	}
}

func NewUpsertedResult(stream string, outcome UpsertOutcome) Result {
	return Result{
		Stream:  stream,
		Outcome: &outcome,
	}
}

// Status is used as the metric label of a result.
func (r Result) Status() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Outcome != nil && r.Outcome.Success:
		return "success"
	default:
		return "unsuccessful"
	}
}
