package match

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerRepository stores results in an embedded Badger database.
//
// Keys:
//
//	result:<match_id>            JSON Result
//	player:<player_id>:<match_id> empty marker
type BadgerRepository struct {
	db *badger.DB
}

// NewBadgerRepository opens (or creates) a database in dir. An empty dir
// opens an in-memory database.
func NewBadgerRepository(dir string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerRepository{db: db}, nil
}

func (r *BadgerRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func resultKey(matchID string) []byte { return []byte("result:" + matchID) }

func playerPrefix(playerID string) []byte { return []byte("player:" + playerID + ":") }

func (r *BadgerRepository) SaveResult(_ context.Context, g *Match) error {
	if g == nil {
		return nil
	}
	res := NewResult(g)
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(resultKey(res.MatchID), data); err != nil {
			return err
		}
		for _, p := range []string{res.WhiteID, res.BlackID} {
			if err := txn.Set(append(playerPrefix(p), res.MatchID...), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BadgerRepository) RecentResults(ctx context.Context, playerID string, limit int) ([]*Result, error) {
	var items []*Result
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := playerPrefix(playerID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			matchID := string(it.Item().Key()[len(prefix):])
			item, err := txn.Get(resultKey(matchID))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			var res Result
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &res)
			}); err != nil {
				return err
			}
			items = append(items, &res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Result{}
	}
	sortResults(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
