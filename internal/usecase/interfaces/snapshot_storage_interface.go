package interfaces

import "context"

// ISnapshotStorage stores serialized session snapshots under a named key.
// Load returns (nil, nil) when the key does not exist.
type ISnapshotStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
