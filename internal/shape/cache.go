// Package shape caches parsed template shapes.
//
// A shape is the static-chunk sequence of a template, independent of any
// interpolated values. Since Go has no literal-template identity
// guarantee, entries are keyed by an explicit structural fingerprint of
// the chunks. Cached trees hold only structure and slot indices, so they
// are shared read-only across concurrent resolutions; there is no
// invalidation path.
package shape

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/conneroisu/tdom/internal/parser"
)

// DefaultCapacity bounds the default shape cache.
const DefaultCapacity = 512

// Cache is a bounded LRU mapping template fingerprints to parsed
// intermediate trees. A single coarse lock guards lookup-or-insert;
// parsing itself is pure and reentrant, so contention only matters on a
// miss.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int
	// LRU doubly-linked list with dummy head and tail.
	head *entry
	tail *entry
	// Counters are atomic so Stats never needs the lock.
	hits      int64
	misses    int64
	evictions int64
}

type entry struct {
	key  string
	tree *parser.Tree
	prev *entry
	next *entry
}

// New creates a cache holding at most capacity shapes. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Fingerprint computes the structural cache key for a chunk sequence.
// Chunks are joined with a separator that cannot occur inside template
// text, so distinct sequences never collide; the xml flag participates
// because the two modes parse differently.
func Fingerprint(chunks []string, xml bool) string {
	var b strings.Builder
	if xml {
		b.WriteString("x\x00")
	} else {
		b.WriteString("h\x00")
	}
	for i, chunk := range chunks {
		if i > 0 {
			b.WriteString("\x00\x1f")
		}
		b.WriteString(chunk)
	}
	return b.String()
}

// GetOrParse returns the cached tree for the chunk sequence, parsing and
// inserting on a miss. Parse failures are returned unchanged and nothing
// is cached for the failing shape.
func (c *Cache) GetOrParse(chunks []string, xml bool) (*parser.Tree, error) {
	key := Fingerprint(chunks, xml)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		c.mu.Unlock()
		atomic.AddInt64(&c.hits, 1)
		return e.tree, nil
	}
	c.mu.Unlock()
	atomic.AddInt64(&c.misses, 1)

	// Parse outside the lock: it is pure, and concurrent misses for the
	// same shape just produce equivalent trees, the last insert wins.
	tree, err := parser.Parse(chunks, xml)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.entries[key]; ok {
		c.moveToFront(existing)
		c.mu.Unlock()
		return existing.tree, nil
	}
	e := &entry{key: key, tree: tree}
	c.entries[key] = e
	c.pushFront(e)
	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
	c.mu.Unlock()
	return tree, nil
}

// Len returns the number of cached shapes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit, miss and eviction counters.
func (c *Cache) Stats() (hits, misses, evictions int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), atomic.LoadInt64(&c.evictions)
}

func (c *Cache) pushFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) unlink(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *Cache) moveToFront(e *entry) {
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.unlink(oldest)
	delete(c.entries, oldest.key)
	atomic.AddInt64(&c.evictions, 1)
}
