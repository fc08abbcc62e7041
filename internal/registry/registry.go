// Package registry tracks uploaded file metadata by id.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks an id with no registry entry.
var ErrNotFound = errors.New("file not found")

// FileInfo is the persisted metadata of one stored file.
type FileInfo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Format     string    `json:"file_type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"upload_timestamp"`
}

// Registry is the metadata store consumed by the serving layer.
type Registry interface {
	Get(ctx context.Context, id string) (FileInfo, error)
	Put(ctx context.Context, info FileInfo) error
	List(ctx context.Context) ([]FileInfo, error)
	Delete(ctx context.Context, id string) error
}
