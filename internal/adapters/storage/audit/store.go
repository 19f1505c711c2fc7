package audit

import (
	"context"

	domain "clubroll/internal/domain/audit"
)

// Store accepts batches of change records. Appends are best-effort from
// the caller's point of view: a failed append must never roll back the
// data write it describes.
type Store interface {
	Append(ctx context.Context, entries []domain.Entry) error
}
