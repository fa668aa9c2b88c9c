package out

import "context"

// BlobStore is a key/value medium holding whole encoded values.
// Get reports ok=false when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ChangeWatcher signals when the stored blob was modified, possibly by another process.
type ChangeWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
