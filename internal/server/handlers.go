package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"lrucache/pkg/errors"
	"lrucache/pkg/logger"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) handleStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatsResponse{
			Size:     s.store.Size(),
			Capacity: s.store.Capacity(),
		})
	}
}

func (s *Server) handleKeys() gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := s.store.Keys()
		sort.Strings(keys)
		c.JSON(http.StatusOK, KeysResponse{Keys: keys})
	}
}

func (s *Server) handleLRUValues() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, LRUValuesResponse{Values: s.store.LRUValues()})
	}
}

// Entry handlers
func (s *Server) handleGetEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		value, ok := s.store.Get(key)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": errors.ErrKeyNotFound.Error()})
			return
		}

		c.JSON(http.StatusOK, EntryResponse{Key: key, Value: value})
	}
}

func (s *Server) handlePutEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		var req PutEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s.store.Put(key, *req.Value)
		c.JSON(http.StatusOK, EntryResponse{Key: key, Value: *req.Value})
	}
}

func (s *Server) handleDeleteEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		removed := s.store.Invalidate(c.Param("key"))
		c.JSON(http.StatusOK, InvalidateResponse{Removed: removed})
	}
}

// Invalidation handlers
func (s *Server) handleInvalidatePrefix() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InvalidatePrefixRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		removed := s.store.InvalidateByPrefix(req.Prefix)
		logger.Info("Invalidated cache entries by prefix", "prefix", req.Prefix, "removed", removed)
		c.JSON(http.StatusOK, InvalidateResponse{Removed: removed})
	}
}

func (s *Server) handleInvalidateAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		removed := s.store.InvalidateAll()
		logger.Info("Invalidated all cache entries", "removed", removed)
		c.JSON(http.StatusOK, InvalidateResponse{Removed: removed})
	}
}
