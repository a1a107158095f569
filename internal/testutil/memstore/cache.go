package memstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Cache is a JSON list cache kept in a map. Setting Err makes every call fail.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gens    map[string]int64
	hits    int
	Err     error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte), gens: make(map[string]int64)}
}

func (c *Cache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	c.hits++
	return true, nil
}

func (c *Cache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *Cache) Generation(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	return c.gens[key], nil
}

func (c *Cache) Bump(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.gens[key]++
	return nil
}

// Len counts stored list entries, generation counters excluded.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}
