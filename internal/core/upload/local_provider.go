package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist
var ErrNotFound = errors.New("file not found")

// LocalProvider stores files on the local filesystem
type LocalProvider struct {
	basePath   string // Base directory for uploads
	baseURL    string // Base URL to access files
	publicPath string // Public path for URL generation
}

// NewLocalProvider creates a new local file storage provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalProvider{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicPath: "/files/",
	}, nil
}

// Upload writes a file under basePath/folder
func (p *LocalProvider) Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error) {
	options = MergeOptions(options)

	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filename), ext)

	var finalFilename string
	if options.PublicID != "" {
		finalFilename = options.PublicID + ext
	} else {
		uniqueID := uuid.New().String()[:8]
		finalFilename = fmt.Sprintf("%s_%d_%s%s", nameWithoutExt, time.Now().Unix(), uniqueID, ext)
	}

	folderPath := filepath.Join(p.basePath, options.Folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	filePath := filepath.Join(folderPath, finalFilename)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !options.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("file already exists: %s", finalFilename)
		}
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	// Read one byte past the limit so oversize files are detected
	src := file
	if options.MaxSize > 0 {
		src = io.LimitReader(file, options.MaxSize+1)
	}
	size, err := io.Copy(out, src)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if options.MaxSize > 0 && size > options.MaxSize {
		os.Remove(filePath)
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	publicID := options.Folder + "/" + finalFilename

	return &UploadResult{
		URL:      p.GetURL(publicID),
		FileName: filename,
		Size:     size,
		Format:   strings.TrimPrefix(ext, "."),
		PublicID: publicID,
	}, nil
}

// Open opens a stored file for reading
func (p *LocalProvider) Open(ctx context.Context, publicID string) (io.ReadCloser, error) {
	path, err := p.resolve(publicID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, publicID)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete deletes a file from local filesystem
func (p *LocalProvider) Delete(ctx context.Context, publicID string) error {
	path, err := p.resolve(publicID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, publicID)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PurgeOlderThan removes stored files last modified before now-age and returns how many were removed
func (p *LocalProvider) PurgeOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	removed := 0

	err := filepath.WalkDir(p.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge uploads: %w", err)
	}

	return removed, nil
}

// GetURL gets the public URL for a file
func (p *LocalProvider) GetURL(publicID string) string {
	return p.baseURL + p.publicPath + publicID
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}

// BasePath returns the storage root, used to serve files statically
func (p *LocalProvider) BasePath() string {
	return p.basePath
}

// resolve maps a public ID to a path, refusing IDs that escape basePath
func (p *LocalProvider) resolve(publicID string) (string, error) {
	path := filepath.Join(p.basePath, filepath.FromSlash(publicID))
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid file id: %s", publicID)
	}
	return path, nil
}
