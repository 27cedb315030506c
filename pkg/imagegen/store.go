package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// Store downloads generated images into a local directory. Persistence is a
// side effect of the image collaborator, not pipeline state; failures here
// never fail a run.
type Store struct {
	fs     afero.Fs
	dir    string
	client *http.Client
}

func NewStore(fs afero.Fs, dir string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{
		fs:     fs,
		dir:    dir,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Save fetches url and writes it under the store directory as name.png,
// returning the local path. Placeholder URLs are skipped.
func (s *Store) Save(ctx context.Context, url, name string) (string, error) {
	if IsPlaceholder(url) {
		return "", fmt.Errorf("placeholder reference, nothing to download")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading image: unexpected status %d", resp.StatusCode)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}
	path := filepath.Join(s.dir, Slug(name)+".png")
	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return path, nil
}
