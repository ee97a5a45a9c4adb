package refresh

import (
	"context"
	"errors"
)

// ErrNotModified is returned by a Source when the data has not changed
// since the given version. The refresher treats it as a successful no-op.
var ErrNotModified = errors.New("refresh: source not modified")

// Source fetches raw bytes from somewhere external.
//
// version is the opaque version string returned by the previous successful
// Fetch, or "" on the first call. A source that can answer cheaply (ETag,
// modification time) should return ErrNotModified when nothing changed.
type Source interface {
	Fetch(ctx context.Context, version string) (data []byte, newVersion string, err error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, version string) ([]byte, string, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context, version string) ([]byte, string, error) {
	return f(ctx, version)
}
