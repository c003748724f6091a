package description

import "context"

// Store persists the per-session history and saved lists. Lists are kept
// newest first.
type Store interface {
	Push(ctx context.Context, sessionID string, kind ListKind, entry Entry, limit int) error
	List(ctx context.Context, sessionID string, kind ListKind) ([]Entry, error)
	// Delete removes the entry at index and reports whether it existed.
	Delete(ctx context.Context, sessionID string, kind ListKind, index int) (bool, error)
}
