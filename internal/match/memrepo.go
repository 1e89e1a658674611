package match

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps results in process memory. Used when no database
// is configured and in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*Result
	byPlayer map[string][]string // player -> match IDs
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:     make(map[string]*Result),
		byPlayer: make(map[string][]string),
	}
}

func (r *MemoryRepository) SaveResult(_ context.Context, g *Match) error {
	if g == nil {
		return nil
	}
	res := NewResult(g)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[res.MatchID]; !exists {
		for _, p := range []string{res.WhiteID, res.BlackID} {
			r.byPlayer[p] = append(r.byPlayer[p], res.MatchID)
		}
	}
	r.byID[res.MatchID] = res
	return nil
}

func (r *MemoryRepository) RecentResults(_ context.Context, playerID string, limit int) ([]*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byPlayer[playerID]
	items := make([]*Result, 0, len(ids))
	for _, id := range ids {
		cp := *r.byID[id]
		items = append(items, &cp)
	}
	sortResults(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *MemoryRepository) Close() error { return nil }

// sortResults orders by end time, newest first, then by match ID.
func sortResults(items []*Result) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].MatchID > items[j].MatchID
	})
}
