// Package cache keeps large read-only objects, like loaded corpora, around
// so that searches run in the same process load each input only once.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object stored under key.
type LoadFunc func(key string) (any, error)

// GlobalObjectCache is the process-wide cache.
var GlobalObjectCache = &cache{objects: make(map[string]any)}

func (c *cache) get(key string, load LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := load(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the object cached under key, calling load to build it the
// first time. Failed loads are not cached.
func Load[T any](key string, load func(key string) (T, error)) (T, error) {
	obj, err := GlobalObjectCache.get(key, func(k string) (any, error) {
		return load(k)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return obj.(T), nil
}

// Forget drops key from the cache.
func Forget(key string) {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	delete(GlobalObjectCache.objects, key)
}
