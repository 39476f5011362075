package client

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// TokenCache is a best-effort on-disk cache for the admin session token, so
// a restarted process (or a second strapi-mcp instance pointed at the same
// CMS) can reuse a still-valid session instead of logging in again. Every
// failure here is logged and swallowed: the cache is a convenience, not part
// of the auth contract.
type TokenCache struct {
	path string
	log  *slog.Logger
}

// cacheFile is the YAML document stored on disk.
type cacheFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"savedAt"`
}

// NewTokenCache creates a cache backed by the file at path.
func NewTokenCache(path string, log *slog.Logger) *TokenCache {
	return &TokenCache{path: path, log: log}
}

// Load reads the cached token. ok is false when there is no usable cache.
func (tc *TokenCache) Load() (token string, ok bool) {
	data, err := os.ReadFile(tc.path)
	if err != nil {
		return "", false
	}
	var cf cacheFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		tc.log.Debug("ignoring malformed token cache", "path", tc.path, "error", err)
		return "", false
	}
	if cf.Token == "" {
		return "", false
	}
	return cf.Token, true
}

// Save writes the token to disk, readable only by the owner.
func (tc *TokenCache) Save(token string) {
	cf := cacheFile{Token: token, SavedAt: time.Now()}
	data, err := yaml.Marshal(cf)
	if err != nil {
		tc.log.Debug("encoding token cache failed", "error", err)
		return
	}
	if dir := filepath.Dir(tc.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			tc.log.Debug("creating token cache directory failed", "path", dir, "error", err)
			return
		}
	}
	if err := os.WriteFile(tc.path, data, 0o600); err != nil {
		tc.log.Debug("writing token cache failed", "path", tc.path, "error", err)
	}
}

// Remove deletes the cache file, if present.
func (tc *TokenCache) Remove() {
	if err := os.Remove(tc.path); err != nil && !os.IsNotExist(err) {
		tc.log.Debug("removing token cache failed", "path", tc.path, "error", err)
	}
}

// WatchTokenCache watches the cache file and adopts a token written by
// another process whenever the local session has none. The watch is
// debounced to coalesce write bursts and stops when ctx is done. It is a
// no-op when no cache is configured.
func (c *Client) WatchTokenCache(ctx context.Context) {
	if c.cache == nil {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.log.Debug("token cache watch unavailable", "error", err)
		return
	}
	// Watch the directory: the file itself may not exist yet, and editors
	// and atomic writers replace files rather than writing in place.
	dir := filepath.Dir(c.cache.path)
	if err := watcher.Add(dir); err != nil {
		c.log.Debug("token cache watch unavailable", "path", dir, "error", err)
		watcher.Close()
		return
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		const debounce = 250 * time.Millisecond
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(c.cache.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, c.adoptCachedToken)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()
}

// adoptCachedToken picks up an externally written token when the session is
// empty. A session that already holds a token is left alone.
func (c *Client) adoptCachedToken() {
	if c.session.Token() != "" {
		return
	}
	token, ok := c.cache.Load()
	if !ok || c.tokenExpired(token) {
		return
	}
	c.session.SetToken(token, c.now())
	c.log.Debug("adopted externally refreshed admin token", "path", c.cache.path)
}
