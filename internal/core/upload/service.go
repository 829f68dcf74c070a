package upload

import (
	"context"
	"fmt"
	"io"
)

// Service provides file storage with provider switching
type Service struct {
	provider     Provider
	providerName string
}

// NewService creates a new upload service
func NewService(provider Provider) *Service {
	return &Service{
		provider:     provider,
		providerName: provider.GetProviderName(),
	}
}

// Upload stores a file using the configured provider
func (s *Service) Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("upload provider not configured")
	}

	return s.provider.Upload(ctx, file, filename, options)
}

// Open returns the content of a stored file
func (s *Service) Open(ctx context.Context, publicID string) (io.ReadCloser, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("upload provider not configured")
	}

	return s.provider.Open(ctx, publicID)
}

// Delete deletes a file by public ID
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if s.provider == nil {
		return fmt.Errorf("upload provider not configured")
	}

	return s.provider.Delete(ctx, publicID)
}

// GetURL gets the public URL for a file
func (s *Service) GetURL(publicID string) string {
	if s.provider == nil {
		return ""
	}

	return s.provider.GetURL(publicID)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	return s.providerName
}

// Provider exposes the active backend
func (s *Service) Provider() Provider {
	return s.provider
}
