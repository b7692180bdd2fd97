package repository

import (
	"context"

	"podquest/pkg/model"
)

// TimeLayout is the persisted timestamp format: naive local time, no zone,
// ISO-parseable. It matches what the original ledger files already contain.
const TimeLayout = "2006-01-02 15:04:05"

// LedgerStore is the durable backing of the reservation ledger. Load reads
// the whole ledger at startup; Append durably adds one committed
// reservation. An Append that returns an error must leave the store
// unchanged, since the scheduler reports it as a persistence failure and
// keeps its in-memory ledger at the pre-attempt state.
type LedgerStore interface {
	Load(ctx context.Context) ([]model.Reservation, error)
	Append(ctx context.Context, reservation *model.Reservation) error
}
