// Package catalog keeps an in-memory, filterable copy of the city list.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// CityLister is the read side of the price repository the index depends on.
type CityLister interface {
	ListCities(ctx context.Context) ([]string, error)
}

// Index caches the alphabetical city list and answers substring searches over it.
// It never writes to the repository; callers refresh it after mutations.
type Index struct {
	source CityLister

	mu     sync.RWMutex
	cities []string
}

// New creates an empty Index backed by source. Call Refresh to load it.
func New(source CityLister) *Index {
	return &Index{source: source, cities: []string{}}
}

// Refresh reloads the full city list from the source, replacing the cache.
// On error the previous cache is kept.
func (idx *Index) Refresh(ctx context.Context) error {
	cities, err := idx.source.ListCities(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh city catalog: %w", err)
	}

	idx.mu.Lock()
	idx.cities = slices.Clone(cities)
	idx.mu.Unlock()
	return nil
}

// Cities returns a copy of the cached city list.
func (idx *Index) Cities() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.cities)
}

// Filter returns the cached cities containing substr, ignoring case, in cached order.
// An empty substr matches every city.
func (idx *Index) Filter(substr string) []string {
	needle := strings.ToLower(strings.TrimSpace(substr))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := []string{}
	for _, city := range idx.cities {
		if strings.Contains(strings.ToLower(city), needle) {
			matches = append(matches, city)
		}
	}
	return matches
}
