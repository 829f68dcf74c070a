package upload

import (
	"context"
	"io"
)

// UploadResult represents a stored file
type UploadResult struct {
	URL      string `json:"url"`       // Public URL to access the file
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	Format   string `json:"format"`    // File extension without dot
	PublicID string `json:"public_id"` // Provider-specific key
}

// UploadOptions represents upload configuration options
type UploadOptions struct {
	Folder      string `json:"folder"`       // Folder/prefix to store under
	PublicID    string `json:"public_id"`    // Custom key (without extension)
	Overwrite   bool   `json:"overwrite"`    // Overwrite existing file
	ContentType string `json:"content_type"` // Stored MIME type; detected from extension when empty
	MaxSize     int64  `json:"max_size"`     // Max file size in bytes
}

// Provider defines the interface for file storage backends
type Provider interface {
	// Upload stores a file and returns the result
	Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error)

	// Open returns the content of a stored file
	Open(ctx context.Context, publicID string) (io.ReadCloser, error)

	// Delete deletes a file by public ID
	Delete(ctx context.Context, publicID string) error

	// GetURL gets the public URL for a file
	GetURL(publicID string) string

	// GetProviderName returns the provider name
	GetProviderName() string
}

// DefaultUploadOptions returns default upload options
func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		Folder:  "uploads",
		MaxSize: 10 * 1024 * 1024, // 10MB
	}
}

// MergeOptions merges custom options with defaults
func MergeOptions(custom *UploadOptions) *UploadOptions {
	defaults := DefaultUploadOptions()

	if custom == nil {
		return defaults
	}

	if custom.Folder != "" {
		defaults.Folder = custom.Folder
	}
	if custom.PublicID != "" {
		defaults.PublicID = custom.PublicID
	}
	if custom.ContentType != "" {
		defaults.ContentType = custom.ContentType
	}
	if custom.MaxSize > 0 {
		defaults.MaxSize = custom.MaxSize
	}

	defaults.Overwrite = custom.Overwrite

	return defaults
}
