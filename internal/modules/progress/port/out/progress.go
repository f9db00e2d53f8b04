package out

import (
	"context"

	practice "wellness/internal/modules/practice/domain"
)

// RecordSource yields the records of whichever store is active.
type RecordSource interface {
	Records(ctx context.Context) ([]practice.SessionRecord, error)
}
