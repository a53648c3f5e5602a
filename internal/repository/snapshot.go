package repository

import "context"

// SnapshotRepository stores the serialized notebook as one blob.
// Load returns (nil, nil) when nothing was saved yet.
type SnapshotRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
