package cache

import (
	"context"
	"time"
)

// Page is a generated product page: the JSON props it was rendered from
// and the rendered HTML.
type Page struct {
	Key         string    `bson:"_id"`
	Props       []byte    `bson:"props"`
	HTML        []byte    `bson:"html"`
	ETag        string    `bson:"etag"`
	GeneratedAt time.Time `bson:"generated_at"`
}

// Store keeps generated pages. Stale pages are still returned; deciding
// when to regenerate is up to the caller.
type Store interface {
	Get(ctx context.Context, key string) (*Page, bool, error)
	Put(ctx context.Context, page *Page) error
	Size(ctx context.Context) (int64, error)
}
