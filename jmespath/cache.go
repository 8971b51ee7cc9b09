package jmespath

import "sync"

// Cache compiles each distinct expression once and shares the result
// across the per-document fan-out described in spec §5. Entries are added
// lazily on first use under a read-write lock, so one Cache may be shared
// across workers.
type Cache struct {
	evaluator *Evaluator

	mu      sync.RWMutex
	entries map[string]Compiled
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		evaluator: NewEvaluator(),
		entries:   make(map[string]Compiled),
	}
}

// Get returns the [Compiled] expression for expr, compiling and caching it
// on first use.
func (c *Cache) Get(expr string) (Compiled, error) {
	c.mu.RLock()
	compiled, ok := c.entries[expr]
	c.mu.RUnlock()

	if ok {
		return compiled, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if compiled, ok := c.entries[expr]; ok {
		return compiled, nil
	}

	compiled, err := c.evaluator.Compile(expr)
	if err != nil {
		return Compiled{}, err
	}

	c.entries[expr] = compiled

	return compiled, nil
}
