package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalProvider keeps uploads on the server disk. The default for
// single-node deployments; S3 is used when configured.
type LocalProvider struct {
	basePath string
	baseURL  string
}

func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (l *LocalProvider) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	path := l.fullPath(request.Key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", request.Key, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", request.Key, err)
	}
	defer file.Close()

	size, err := io.Copy(file, request.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", request.Key, err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  l.baseURL + "/" + request.Key,
		Size: size,
	}, nil
}

func (l *LocalProvider) Delete(ctx context.Context, key string) error {
	if err := os.Remove(l.fullPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (l *LocalProvider) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return l.baseURL + "/" + key, nil
}

func (l *LocalProvider) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(l.fullPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *LocalProvider) fullPath(key string) string {
	// Keys are caller-generated, but keep path traversal out anyway.
	clean := filepath.Clean("/" + key)
	return filepath.Join(l.basePath, clean)
}
