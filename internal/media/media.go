package media

import (
	"context"
	"io"
)

// Store uploads media assets and returns a publicly retrievable URL.
// Callers never inspect the asset beyond "the upload must succeed".
type Store interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
