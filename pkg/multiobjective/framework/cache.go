package framework

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProblem memoizes the fitness vectors of an underlying Problem. It is
// safe for concurrent use, so a single CachedProblem can be shared by tasks
// that are seeded with the same decision vectors.
type CachedProblem struct {
	Problem
	cache *gocache.Cache
}

// NewCachedProblem wraps p. Entries expire after ttl; a zero ttl keeps them
// forever.
func NewCachedProblem(p Problem, ttl time.Duration) *CachedProblem {
	expiration, cleanup := gocache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 2*ttl
	}
	return &CachedProblem{
		Problem: p,
		cache:   gocache.New(expiration, cleanup),
	}
}

func (c *CachedProblem) Evaluate(x []float64) ([]float64, error) {
	key := hashVector(x)
	if v, ok := c.cache.Get(key); ok {
		return append([]float64(nil), v.([]float64)...), nil
	}
	f, err := c.Problem.Evaluate(x)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, append([]float64(nil), f...), gocache.DefaultExpiration)
	return f, nil
}

// Len returns the number of cached fitness vectors.
func (c *CachedProblem) Len() int {
	return c.cache.ItemCount()
}

func hashVector(x []float64) string {
	data := make([]byte, len(x)*8)
	for i, v := range x {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
