package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
	baseURL  string // e.g. "http://localhost:8080/uploads"
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Put(ctx context.Context, data []byte, folder string, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(filepath.Join(folder, key))
	fullPath := filepath.Join(s.basePath, cleanPath)

	// Prevent directory traversal out of basePath
	if !strings.HasPrefix(fullPath, s.basePath) {
		return "", fmt.Errorf("invalid object path: %s/%s", folder, key)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(cleanPath), nil
}

func (s *LocalStorage) Get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathFromURL(url)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object not found: %s", url)
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	path, err := s.pathFromURL(url)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (s *LocalStorage) pathFromURL(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", fmt.Errorf("url outside this store: %s", url)
	}

	fullPath := filepath.Join(s.basePath, filepath.Clean(rel))
	if !strings.HasPrefix(fullPath, s.basePath) {
		return "", fmt.Errorf("invalid object url: %s", url)
	}

	return fullPath, nil
}
