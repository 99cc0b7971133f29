// Package media wraps the remote asset store (Cloudinary) behind a small
// interface so the product service can be tested without network access.
package media

import (
	"context"
	"path"
	"strings"
)

// Kind selects the Cloudinary resource type. Videos must be tagged
// explicitly or the store mishandles them.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Asset is the outcome of a successful upload: a durable public URL and the
// store identifier needed to delete the asset later.
type Asset struct {
	URL      string
	PublicID string
}

type Store interface {
	Upload(ctx context.Context, localPath string, kind Kind) (Asset, error)
	Destroy(ctx context.Context, publicID string, kind Kind) error
}

// PublicIDFromURL recovers a store identifier from an asset URL: the final
// path segment with its extension stripped. Kept only as a fallback for
// records written before public IDs were stored on the product; the
// derivation must match the store's URL shape exactly.
func PublicIDFromURL(url string) string {
	segment := path.Base(url)
	if i := strings.Index(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return segment
}
