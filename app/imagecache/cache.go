/* cache.go
 * Contains the memoized photo cache. Protected photos are fetched once, written
 * under the cache directory and addressed by local path from then on. A failed
 * fetch caches a placeholder so a dead URL is not retried on every render
 * Authors: Zachary Bower
 */

package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// placeholderSVG is rendered in place of photos that could not be fetched
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"><rect fill="#333" width="100" height="100"/><text x="50" y="50" text-anchor="middle" fill="#999" font-size="12">Image Error</text></svg>`

type Cache struct {
	mu          sync.Mutex
	dir         string
	http        *http.Client
	paths       map[string]string
	placeholder string
}

// New creates a photo cache rooted at dir.
// Postconditions: Returns a pointer to the Cache with the directory and the
// placeholder file in place, or an error if either could not be created
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image cache directory: %w", err)
	}

	placeholder := filepath.Join(dir, "placeholder.svg")
	if err := os.WriteFile(placeholder, []byte(placeholderSVG), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write placeholder image: %w", err)
	}

	return &Cache{
		dir:         dir,
		http:        &http.Client{Timeout: 30 * time.Second},
		paths:       make(map[string]string),
		placeholder: placeholder,
	}, nil
}

// Placeholder returns the path of the stable placeholder image
func (c *Cache) Placeholder() string {
	return c.placeholder
}

// Get returns a local file path for the photo at url, fetching and storing it on
// first use. Later calls for the same url return the cached path without I/O.
// Failures degrade to the placeholder path, which is itself memoized. Concurrent
// callers may fetch the same url once each; the first writer wins and the losers
// adopt its path, which is safe because the fetch is idempotent
func (c *Cache) Get(url string) string {
	c.mu.Lock()
	if path, ok := c.paths[url]; ok {
		c.mu.Unlock()
		return path
	}
	c.mu.Unlock()

	path, err := c.fetch(url)
	if err != nil {
		slog.Warn("image fetch failed, using placeholder", "url", url, "error", err)
		path = c.placeholder
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.paths[url]; ok {
		return existing
	}
	c.paths[url] = path
	return path
}

// fetch downloads the photo and writes it under the cache directory, named by the
// hash of its url with an extension sniffed from the content
func (c *Cache) fetch(url string) (string, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	// Same tunnel bypass as the backend client, the photos sit behind it too
	request.Header.Set("ngrok-skip-browser-warning", "true")

	response, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to load image: status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:8]) + mimetype.Detect(body).Extension()
	path := filepath.Join(c.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	return path, nil
}

// Clear drops every cached reference and removes the stored files. Safe to call
// at any time: an in-flight fetch that completes after the clear is simply cached
// fresh by its caller
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range c.paths {
		if path == c.placeholder {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove cached image", "path", path, "error", err)
		}
	}
	c.paths = make(map[string]string)
}
