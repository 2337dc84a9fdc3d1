// Package simcache caches the most recent unsaved computation result per
// category. Each category holds at most one pending result: recording a new
// one silently discards the previous (last-write-wins), and the only other
// way an entry disappears is being cleared after a successful save.
package simcache

import (
	"sync"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
)

// Entry is an unsaved run: the parameters it was started with and the
// resulting output.
type Entry struct {
	Parameters models.ParameterSet
	Output     models.ComputationOutput
}

// Cache holds one slot per category.
type Cache struct {
	mu    sync.Mutex
	slots map[models.Category]*Entry
}

func New() *Cache {
	return &Cache{slots: make(map[models.Category]*Entry, 2)}
}

// Record overwrites the slot for category unconditionally.
func (c *Cache) Record(category models.Category, params models.ParameterSet, output models.ComputationOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[category] = &Entry{Parameters: params, Output: output}
}

// Peek returns the current slot value without mutating it, or nil when the
// category has no pending result.
func (c *Cache) Peek(category models.Category) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[category]
}

// Clear empties the slot for category.
func (c *Cache) Clear(category models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, category)
}

// Reset empties both slots. Called on identity transitions.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[models.Category]*Entry, 2)
}

// Pending lists the categories that currently hold an unsaved result, in
// presentation order.
func (c *Cache) Pending() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Category
	for _, cat := range models.Categories() {
		if c.slots[cat] != nil {
			out = append(out, cat)
		}
	}
	return out
}
