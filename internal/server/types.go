package server

// PutEntryRequest represents the request body for storing a value
type PutEntryRequest struct {
	Value *string `json:"value" binding:"required"`
}

// EntryResponse represents a single cached key/value pair
type EntryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// InvalidatePrefixRequest represents the request body for prefix invalidation
type InvalidatePrefixRequest struct {
	Prefix string `json:"prefix" binding:"required"`
}

// InvalidateResponse reports how many entries were removed
type InvalidateResponse struct {
	Removed int `json:"removed"`
}

// StatsResponse represents the response body for cache stats
type StatsResponse struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// KeysResponse represents the response body for listing keys
type KeysResponse struct {
	Keys []string `json:"keys"`
}

// LRUValuesResponse lists values from most to least recently used
type LRUValuesResponse struct {
	Values []string `json:"values"`
}
