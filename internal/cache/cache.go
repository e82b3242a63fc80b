package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cache is the opaque key-value store consulted by the read paths and
// invalidated by key on writes. Implementations decide their own storage;
// callers only ever see keys and byte payloads.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// TTLs follow the read paths they back: detail pages tolerate staler data
// than listings, so listings expire faster.
const (
	ProductDetailTTL = 5 * time.Minute
	ProductListTTL   = 2 * time.Minute
)

// ProductDetailKey is the cache key of a single product's detail payload.
func ProductDetailKey(id uuid.UUID) string {
	return fmt.Sprintf("product_detail_%s", id)
}

// ProductListKey builds a listing cache key from the query fingerprint and
// page. Every distinct filter combination gets its own entry.
func ProductListKey(fingerprint string, page int32) string {
	return fmt.Sprintf("product_list_%s_page%d", fingerprint, page)
}

// ProductListPattern matches every listing key, used to bust all listing
// entries when any product changes.
const ProductListPattern = "product_list_*"
