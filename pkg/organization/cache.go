package organization

// NameCache memoizes OU display names by OU ID. It is not safe for
// concurrent use; each structure build owns its own instance.
type NameCache struct {
	names  map[string]string
	hits   int
	misses int
}

func NewNameCache() *NameCache {
	return &NameCache{
		names: make(map[string]string),
	}
}

// Get returns the cached name for id and records a hit or a miss.
func (c *NameCache) Get(id string) (string, bool) {
	name, ok := c.names[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return name, ok
}

func (c *NameCache) Set(id, name string) {
	c.names[id] = name
}

// Reset drops every cached name and zeroes the counters.
func (c *NameCache) Reset() {
	c.names = make(map[string]string)
	c.hits = 0
	c.misses = 0
}

func (c *NameCache) Len() int {
	return len(c.names)
}

// Stats returns the number of cache hits and misses since the last Reset.
func (c *NameCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
