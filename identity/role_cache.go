package identity

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/upb/wte-dashboard/backend/internal/access"
)

type roleEntry struct {
	userID     uuid.UUID
	role       access.Role
	insertedAt time.Time
	element    *list.Element
}

// RoleCache is an in-memory LRU cache with TTL for role lookups.
// Safe for concurrent use.
type RoleCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*roleEntry
	gens    map[uuid.UUID]uint64 // bumped by Invalidate
	lruList *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	hits    uint64
	misses  uint64
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewRoleCache creates a cache holding at most maxSize roles for ttl each.
// A non-positive maxSize or ttl disables caching.
func NewRoleCache(maxSize int, ttl time.Duration) *RoleCache {
	return &RoleCache{
		entries: make(map[uuid.UUID]*roleEntry),
		gens:    make(map[uuid.UUID]uint64),
		lruList: list.New(),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *RoleCache) enabled() bool {
	return c != nil && c.maxSize > 0 && c.ttl > 0
}

// Get returns the cached role and whether it was present and fresh
func (c *RoleCache) Get(userID uuid.UUID) (access.Role, bool) {
	if !c.enabled() {
		return access.RoleNone, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok || c.now().Sub(entry.insertedAt) > c.ttl {
		c.misses++
		if ok {
			c.remove(userID)
		}
		return access.RoleNone, false
	}

	c.lruList.MoveToFront(entry.element)
	c.hits++
	return entry.role, true
}

// Set stores a role, evicting the least recently used entry when full
func (c *RoleCache) Set(userID uuid.UUID, role access.Role) {
	if !c.enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(userID, role)
}

// Generation returns the user's invalidation counter. Read it before loading
// a role from storage and hand it to SetIfCurrent.
func (c *RoleCache) Generation(userID uuid.UUID) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID]
}

// SetIfCurrent stores role unless the user was invalidated after gen was
// read. It reports whether the role was stored.
func (c *RoleCache) SetIfCurrent(userID uuid.UUID, role access.Role, gen uint64) bool {
	if !c.enabled() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return false
	}
	c.set(userID, role)
	return true
}

// set must be called with the lock held
func (c *RoleCache) set(userID uuid.UUID, role access.Role) {
	if entry, ok := c.entries[userID]; ok {
		entry.role = role
		entry.insertedAt = c.now()
		c.lruList.MoveToFront(entry.element)
		return
	}

	if c.lruList.Len() >= c.maxSize {
		if back := c.lruList.Back(); back != nil {
			c.remove(back.Value.(uuid.UUID))
		}
	}

	entry := &roleEntry{userID: userID, role: role, insertedAt: c.now()}
	entry.element = c.lruList.PushFront(userID)
	c.entries[userID] = entry
}

// Invalidate drops a user's cached role
func (c *RoleCache) Invalidate(userID uuid.UUID) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
	c.remove(userID)
}

// CleanupExpired removes expired entries and returns how many were dropped
func (c *RoleCache) CleanupExpired() int {
	if !c.enabled() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, entry := range c.entries {
		if c.now().Sub(entry.insertedAt) > c.ttl {
			c.remove(id)
			n++
		}
	}
	return n
}

// Stats returns cache statistics
func (c *RoleCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Size:    c.lruList.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// remove must be called with the lock held
func (c *RoleCache) remove(userID uuid.UUID) {
	if entry, ok := c.entries[userID]; ok {
		c.lruList.Remove(entry.element)
		delete(c.entries, userID)
	}
}
