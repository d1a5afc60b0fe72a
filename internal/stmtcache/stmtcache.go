package stmtcache

import (
	"fmt"
	"strings"

	"lrucache/internal/cache"
	"lrucache/pkg/errors"
	"lrucache/pkg/logger"
)

// Statement is a prepared statement handle owned by the cache until evicted
type Statement interface {
	Close() error
}

// PrepareFunc prepares a statement on a cache miss
type PrepareFunc func() (Statement, error)

// Cache holds prepared statements per schema, table and SQL text. Evicted
// and invalidated statements are closed; close failures are logged and not
// returned to the caller that triggered the removal.
//
// Like the underlying cache, a Cache belongs to a single applier goroutine.
type Cache struct {
	lru *cache.IndexedLRUCache[Statement]
}

// New creates a statement cache holding at most capacity statements
func New(capacity int) (*Cache, error) {
	lru, err := cache.NewIndexedLRUCache(capacity, cache.WithRelease(closeStatement))
	if err != nil {
		return nil, fmt.Errorf("create statement cache: %w", err)
	}
	return &Cache{lru: lru}, nil
}

func closeStatement(stmt Statement) {
	if stmt == nil {
		return
	}
	if err := stmt.Close(); err != nil {
		logger.Warn("Failed to close prepared statement", "error", err)
	}
}

// keySep terminates the schema and table parts of a key. Identifiers cannot
// contain NUL, so every prefix ends on a part boundary.
const keySep = "\x00"

func schemaPrefix(schema string) string {
	return schema + keySep
}

func tablePrefix(schema, table string) string {
	return schemaPrefix(schema) + table + keySep
}

// Key returns the cache key of a statement
func Key(schema, table, sql string) string {
	return tablePrefix(schema, table) + sql
}

func validName(name string) error {
	if name == "" {
		return errors.ErrEmptyKey
	}
	if strings.Contains(name, keySep) {
		return fmt.Errorf("%w: %q", errors.ErrInvalidName, name)
	}
	return nil
}

// GetOrPrepare returns the cached statement for sql on schema.table,
// preparing and caching it on a miss
func (c *Cache) GetOrPrepare(schema, table, sql string, prepare PrepareFunc) (Statement, error) {
	if err := validName(schema); err != nil {
		return nil, err
	}
	if err := validName(table); err != nil {
		return nil, err
	}
	key := Key(schema, table, sql)
	if stmt, ok := c.lru.Get(key); ok {
		return stmt, nil
	}

	stmt, err := prepare()
	if err != nil {
		return nil, fmt.Errorf("prepare statement for %s.%s: %w", schema, table, err)
	}
	c.lru.Put(key, stmt)
	logger.Debug("Prepared statement cached", "schema", schema, "table", table, "size", c.lru.Size())
	return stmt, nil
}

// InvalidateTable closes every statement of schema.table, e.g. after DDL
func (c *Cache) InvalidateTable(schema, table string) int {
	removed := c.lru.InvalidateByPrefix(tablePrefix(schema, table))
	if removed > 0 {
		logger.Info("Invalidated table statements", "schema", schema, "table", table, "removed", removed)
	}
	return removed
}

// InvalidateSchema closes every statement of schema
func (c *Cache) InvalidateSchema(schema string) int {
	removed := c.lru.InvalidateByPrefix(schemaPrefix(schema))
	if removed > 0 {
		logger.Info("Invalidated schema statements", "schema", schema, "removed", removed)
	}
	return removed
}

// Len returns the number of cached statements
func (c *Cache) Len() int {
	return c.lru.Size()
}

// Close closes all cached statements and returns how many there were.
// The cache stays usable afterwards.
func (c *Cache) Close() int {
	return c.lru.InvalidateAll()
}
