package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lrucache/pkg/errors"
)

// lrucache Go SDK
//
// A thin wrapper around the lrucache admin HTTP API.
//
// Methods return *CacheError when the server answers with a non-successful
// status code, except Get, which reports a missing key as errors.ErrKeyNotFound.
//
// Example usage:
//  client := NewCacheClient("http://localhost:8080")
//  err := client.Put("db1.users", "stmt")
//  ...

// CacheClient is an HTTP client for the lrucache admin API
type CacheClient struct {
	BaseURL string
	Client  *http.Client
}

// CacheError represents an error returned by the server
type CacheError struct {
	StatusCode int
	Message    string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("CacheError: %d %s", e.StatusCode, e.Message)
}

// Stats mirrors the server's size and capacity report
type Stats struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// NewCacheClient creates a new client
func NewCacheClient(baseURL string) *CacheClient {
	return &CacheClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ----------------- Low-level request helper -----------------
// request sends an HTTP request and decodes a JSON response into out when non-nil
func (c *CacheClient) request(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &CacheError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func entryPath(key string) string {
	return "/v1/cache/entries/" + url.PathEscape(key)
}

type removedResponse struct {
	Removed int `json:"removed"`
}

// ----------------- API Methods -----------------

// HealthCheck checks if the server is healthy. Returns true if healthy.
func (c *CacheClient) HealthCheck() (bool, error) {
	var result map[string]any
	if err := c.request(http.MethodGet, "/", nil, &result); err != nil {
		return false, err
	}
	return result["status"] == "ok", nil
}

// Stats returns the current size and capacity
func (c *CacheClient) Stats() (Stats, error) {
	var stats Stats
	err := c.request(http.MethodGet, "/v1/cache", nil, &stats)
	return stats, err
}

// Put stores value under key
func (c *CacheClient) Put(key, value string) error {
	return c.request(http.MethodPut, entryPath(key), map[string]string{"value": value}, nil)
}

// Get returns the value for key, marking it most recently used on the server
func (c *CacheClient) Get(key string) (string, error) {
	var result struct {
		Value string `json:"value"`
	}
	err := c.request(http.MethodGet, entryPath(key), nil, &result)
	if cerr, ok := err.(*CacheError); ok && cerr.StatusCode == http.StatusNotFound {
		return "", errors.ErrKeyNotFound
	}
	return result.Value, err
}

// Invalidate removes key and returns how many entries were removed (0 or 1)
func (c *CacheClient) Invalidate(key string) (int, error) {
	var result removedResponse
	err := c.request(http.MethodDelete, entryPath(key), nil, &result)
	return result.Removed, err
}

// InvalidateByPrefix removes every key starting with prefix
func (c *CacheClient) InvalidateByPrefix(prefix string) (int, error) {
	var result removedResponse
	err := c.request(http.MethodPost, "/v1/cache/invalidate", map[string]string{"prefix": prefix}, &result)
	return result.Removed, err
}

// InvalidateAll empties the cache
func (c *CacheClient) InvalidateAll() (int, error) {
	var result removedResponse
	err := c.request(http.MethodDelete, "/v1/cache", nil, &result)
	return result.Removed, err
}

// Keys lists the cached keys in sorted order
func (c *CacheClient) Keys() ([]string, error) {
	var result struct {
		Keys []string `json:"keys"`
	}
	err := c.request(http.MethodGet, "/v1/cache/keys", nil, &result)
	return result.Keys, err
}

// LRUValues lists the cached values from most to least recently used
func (c *CacheClient) LRUValues() ([]string, error) {
	var result struct {
		Values []string `json:"values"`
	}
	err := c.request(http.MethodGet, "/v1/cache/lru", nil, &result)
	return result.Values, err
}
