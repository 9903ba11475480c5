// Package storage uploads product images to a Supabase Storage bucket over
// its REST API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the storage endpoint and credentials.
type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
	Timeout    time.Duration
}

// Client implements ports.ImageStore.
type Client struct {
	baseURL string
	key     string
	bucket  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		key:     cfg.ServiceKey,
		bucket:  cfg.Bucket,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether uploads can be served.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.bucket != ""
}

// PublicURL is the address an uploaded object is served from.
func (c *Client) PublicURL(name string) string {
	return c.publicPrefix() + name
}

func (c *Client) publicPrefix() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", c.baseURL, c.bucket)
}

func (c *Client) objectURL(name string) string {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, url.PathEscape(c.bucket), strings.Join(segments, "/"))
}

// safeObjectName rejects names that could resolve outside the bucket.
func safeObjectName(name string) bool {
	if strings.ContainsAny(name, `\?#`) {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if decoded, err := url.PathUnescape(seg); err != nil || seg == "" || decoded == "." || decoded == ".." {
			return false
		}
	}
	return true
}

// Upload stores data under name, replacing any existing object.
func (c *Client) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if !c.Configured() {
		return "", domain.ErrStorageNotConfigured
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(name), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	if err := c.do(req, "upload"); err != nil {
		return "", err
	}
	return c.PublicURL(name), nil
}

// Delete removes the object behind publicURL. URLs outside the bucket are
// ignored and a missing object is not an error.
func (c *Client) Delete(ctx context.Context, publicURL string) error {
	if !c.Configured() {
		return nil
	}
	name, ok := strings.CutPrefix(publicURL, c.publicPrefix())
	if !ok || name == "" {
		return nil
	}
	if !safeObjectName(name) {
		return fmt.Errorf("storage delete: unsafe object name %q", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(name), nil)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	c.authorize(req)

	return c.do(req, "delete")
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
}

func (c *Client) do(req *http.Request, op string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if op == "delete" && resp.StatusCode == http.StatusNotFound {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	return fmt.Errorf("storage %s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
