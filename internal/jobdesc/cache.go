package jobdesc

import (
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
)

// Cache memoises Parse by the blake3 digest of the input text. It is safe
// for concurrent use.
type Cache struct {
	entries *lru.Cache[[32]byte, JobDescription]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    uint64 `json:"hits" yaml:"hits"`
	Misses  uint64 `json:"misses" yaml:"misses"`
	Entries int    `json:"entries" yaml:"entries"`
}

// NewCache returns a cache holding at most size parsed descriptions.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[[32]byte, JobDescription](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Parse returns the cached result for text, parsing it on a miss.
func (c *Cache) Parse(text string) JobDescription {
	key := blake3.Sum256([]byte(text))

	if jd, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return clone(jd)
	}

	c.misses.Add(1)
	jd := Parse(text)
	c.entries.Add(key, jd)
	return clone(jd)
}

// Stats returns hit and miss counts and the current size.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.entries.Len(),
	}
}

func clone(jd JobDescription) JobDescription {
	jd.Skills = slices.Clone(jd.Skills)
	return jd
}
