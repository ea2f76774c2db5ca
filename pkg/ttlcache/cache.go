package ttlcache

import (
	"encoding/json"
	"sync"
	"time"
)

/*
Кэш с TTL по времени создания записи. Записи переживают рестарт через
Snapshot/Restore (JSON), метка создания при этом сохраняется - протухшие
записи из снапшота выметаются обычным Sweep.
*/

type entry[V any] struct {
	Value     V         `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type snapshotEntry[K comparable, V any] struct {
	Key       K         `json:"key"`
	Value     V         `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[K]entry[V]
	clock   func() time.Time
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithClock подменяет источник времени (для тестов).
func WithClock[K comparable, V any](clock func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.clock = clock
	}
}

func New[K comparable, V any](ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{Value: value, CreatedAt: c.clock()}
}

// SetAt кладет запись с явной меткой создания (ресинк из внешнего источника).
func (c *Cache[K, V]) SetAt(key K, value V, createdAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{Value: value, CreatedAt: createdAt}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Values возвращает живые записи; протухшие не отдаются даже до Sweep.
func (c *Cache[K, V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make([]V, 0, len(c.entries))
	for _, e := range c.entries {
		if c.expired(e) {
			continue
		}
		values = append(values, e.Value)
	}
	return values
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep удаляет записи старше TTL, возвращает количество удаленных.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[K, V]) Snapshot() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dump := make([]snapshotEntry[K, V], 0, len(c.entries))
	for key, e := range c.entries {
		dump = append(dump, snapshotEntry[K, V]{Key: key, Value: e.Value, CreatedAt: e.CreatedAt})
	}
	return json.Marshal(dump)
}

// Restore загружает снапшот поверх текущего содержимого.
func (c *Cache[K, V]) Restore(data []byte) error {
	var dump []snapshotEntry[K, V]
	if err := json.Unmarshal(data, &dump); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, se := range dump {
		c.entries[se.Key] = entry[V]{Value: se.Value, CreatedAt: se.CreatedAt}
	}
	return nil
}

func (c *Cache[K, V]) expired(e entry[V]) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.clock().Sub(e.CreatedAt) > c.ttl
}
