package cart

import "context"

// Store persists cart lines between visits.
//
// Load must degrade gracefully: missing or corrupt persisted data yields an
// empty cart and a nil error, never a failure. Save errors are reported to
// the caller, who treats persistence as best-effort.
type Store interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}
