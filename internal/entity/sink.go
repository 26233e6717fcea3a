package entity

import "context"

// RowSink accepts validated rectangular row batches for one destination
// table. Implementations own the wire protocol; callers own validation and
// retry policy.
type RowSink interface {
	InsertBatch(ctx context.Context, batch *RowBatch) error
}
