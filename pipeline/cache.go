package pipeline

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently built snapshots by fingerprint. It is safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[uint64, *Snapshot]
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 1
	}
	entries, err := lru.New[uint64, *Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) Get(key uint64) (*Snapshot, bool) {
	return c.entries.Get(key)
}

func (c *Cache) Add(key uint64, snapshot *Snapshot) {
	c.entries.Add(key, snapshot)
}

func (c *Cache) Purge() {
	c.entries.Purge()
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
