package counts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"social-service/internal/shared/apperr"
)

// Counts are the derived cardinalities of the interaction ledger for one
// post. They are always recomputed from the ledger tables; the redis entry
// is a read-through copy refreshed inside every mutation path.
type Counts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Reposts  int64 `json:"reposts"`
}

type Aggregator struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewAggregator(db *gorm.DB, rdb *redis.Client) *Aggregator {
	return &Aggregator{db: db, rdb: rdb}
}

func key(postID uint) string { return fmt.Sprintf("counts:%d", postID) }

// For returns the counts for a post, serving from redis when possible and
// falling back to the ledger.
func (a *Aggregator) For(ctx context.Context, postID uint) (Counts, error) {
	if a.rdb != nil {
		if raw, err := a.rdb.Get(ctx, key(postID)).Bytes(); err == nil {
			var c Counts
			if json.Unmarshal(raw, &c) == nil {
				return c, nil
			}
		}
	}
	c, err := a.ForTx(a.db, postID)
	if err != nil {
		return Counts{}, err
	}
	a.Refresh(ctx, postID, c)
	return c, nil
}

// ForTx computes the counts inside the caller's transaction so a ledger
// mutation and its count read commit as one unit.
func (a *Aggregator) ForTx(tx *gorm.DB, postID uint) (Counts, error) {
	var c Counts
	row := tx.Raw(`SELECT
		(SELECT count(*) FROM likes WHERE post_id = ?),
		(SELECT count(*) FROM comments WHERE post_id = ?),
		(SELECT count(*) FROM reposts WHERE post_id = ?)`,
		postID, postID, postID).Row()
	if err := row.Scan(&c.Likes, &c.Comments, &c.Reposts); err != nil {
		return Counts{}, apperr.Internal(err, "failed to aggregate counts")
	}
	return c, nil
}

// ForPosts batch-computes counts for a feed page.
func (a *Aggregator) ForPosts(postIDs []uint) (map[uint]Counts, error) {
	out := make(map[uint]Counts, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID uint
		N      int64
	}
	tables := []struct {
		name  string
		apply func(c *Counts, n int64)
	}{
		{"likes", func(c *Counts, n int64) { c.Likes = n }},
		{"comments", func(c *Counts, n int64) { c.Comments = n }},
		{"reposts", func(c *Counts, n int64) { c.Reposts = n }},
	}
	for _, t := range tables {
		var rows []row
		q := fmt.Sprintf("SELECT post_id, count(*) AS n FROM %s WHERE post_id IN ? GROUP BY post_id", t.name)
		if err := a.db.Raw(q, postIDs).Scan(&rows).Error; err != nil {
			return nil, apperr.Internal(err, "failed to aggregate counts")
		}
		for _, r := range rows {
			c := out[r.PostID]
			t.apply(&c, r.N)
			out[r.PostID] = c
		}
	}
	return out, nil
}

// Refresh writes fresh counts to redis. Called synchronously after every
// ledger mutation commits; a cache write failure only logs, the DB value has
// already been returned to the caller.
func (a *Aggregator) Refresh(ctx context.Context, postID uint, c Counts) {
	if a.rdb == nil {
		return
	}
	raw, _ := json.Marshal(c)
	if err := a.rdb.Set(ctx, key(postID), raw, 0).Err(); err != nil {
		log.Printf("counts cache refresh for post %d: %v", postID, err)
	}
}
