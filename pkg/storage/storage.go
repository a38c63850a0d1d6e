// Package storage keeps receipt files on disk and hands out opaque
// references that transactions can carry in their ReceiptRef field.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileInfo contains metadata about a stored receipt
type FileInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"` // Internal storage path
	CreatedAt   time.Time `json:"created_at"`
}

// Storage defines the interface for receipt storage operations
type Storage interface {
	// Upload stores a receipt and returns its metadata
	Upload(ctx context.Context, filename string, contentType string, r io.Reader) (*FileInfo, error)

	// Download retrieves a receipt by its ID
	Download(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, *FileInfo, error)

	// Delete removes a receipt by its ID
	Delete(ctx context.Context, fileID uuid.UUID) error

	// List returns all stored receipts
	List(ctx context.Context) ([]*FileInfo, error)

	// GetInfo returns metadata for a receipt without downloading
	GetInfo(ctx context.Context, fileID uuid.UUID) (*FileInfo, error)
}
