package mdark

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alnah/go-mdark/internal/storage"
)

// CounterKey is the storage key of the export count.
const CounterKey = "mdark.pdfCount"

// UsageCounter counts successful exports across runs.
type UsageCounter struct {
	mu    sync.Mutex
	store storage.Store
}

// NewUsageCounter returns a counter backed by store.
func NewUsageCounter(store storage.Store) *UsageCounter {
	return &UsageCounter{store: store}
}

// Load returns the stored count. A missing or non-numeric value reads as 0.
// The error is non-nil only when the store itself failed; the count is then 0.
func (c *UsageCounter) Load() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Increment adds one and returns the new count. On a store failure the stored
// value is unchanged and the error wraps ErrCounter.
func (c *UsageCounter) Increment() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.load()
	if err != nil {
		return 0, err
	}
	n++
	if err := c.store.Set(CounterKey, strconv.Itoa(n)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCounter, err)
	}
	return n, nil
}

func (c *UsageCounter) load() (int, error) {
	if c == nil || c.store == nil {
		return 0, fmt.Errorf("%w: no store", ErrCounter)
	}

	raw, err := c.store.Get(CounterKey)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCounter, err)
	}
	return parseCount(raw), nil
}

// parseCount reads a stored count. Non-numeric values and negatives become 0.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
