package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/counts"
	"social-service/internal/post"
	"social-service/internal/shared/apperr"
	"social-service/internal/user"
)

type pair struct{ postID, userID uint }

// memLedger enforces the same semantics the composite primary keys and
// transactions give the Postgres repository: single-slot like/repost,
// append-only comments, counts returned atomically with each mutation.
type memLedger struct {
	users    map[uint]bool
	posts    map[uint]bool
	likes    map[pair]bool
	reposts  map[pair]bool
	comments []Comment
	nextID   uint
	clock    time.Time
}

func newMemLedger(userIDs, postIDs []uint) *memLedger {
	m := &memLedger{
		users:   map[uint]bool{},
		posts:   map[uint]bool{},
		likes:   map[pair]bool{},
		reposts: map[pair]bool{},
		nextID:  1,
		clock:   time.Now(),
	}
	for _, id := range userIDs {
		m.users[id] = true
	}
	for _, id := range postIDs {
		m.posts[id] = true
	}
	return m
}

func (m *memLedger) checkRefs(userID, postID uint) error {
	if !m.users[userID] {
		return apperr.NotFoundf("user %d not found", userID)
	}
	if !m.posts[postID] {
		return apperr.NotFoundf("post %d not found", postID)
	}
	return nil
}

func (m *memLedger) countsFor(postID uint) counts.Counts {
	var c counts.Counts
	for p := range m.likes {
		if p.postID == postID {
			c.Likes++
		}
	}
	for p := range m.reposts {
		if p.postID == postID {
			c.Reposts++
		}
	}
	for _, cm := range m.comments {
		if cm.PostID == postID {
			c.Comments++
		}
	}
	return c
}

func (m *memLedger) addToggle(set map[pair]bool, relation string, userID, postID uint) (counts.Counts, error) {
	if err := m.checkRefs(userID, postID); err != nil {
		return counts.Counts{}, err
	}
	k := pair{postID, userID}
	if set[k] {
		return counts.Counts{}, apperr.Conflictf("post %d already has a %s by user %d", postID, relation, userID)
	}
	set[k] = true
	return m.countsFor(postID), nil
}

func (m *memLedger) removeToggle(set map[pair]bool, relation string, userID, postID uint) (counts.Counts, error) {
	k := pair{postID, userID}
	if !set[k] {
		return counts.Counts{}, apperr.NotFoundf("no %s by user %d on post %d", relation, userID, postID)
	}
	delete(set, k)
	return m.countsFor(postID), nil
}

func (m *memLedger) AddLike(userID, postID uint) (counts.Counts, error) {
	return m.addToggle(m.likes, "like", userID, postID)
}

func (m *memLedger) RemoveLike(userID, postID uint) (counts.Counts, error) {
	return m.removeToggle(m.likes, "like", userID, postID)
}

func (m *memLedger) AddRepost(userID, postID uint) (counts.Counts, error) {
	return m.addToggle(m.reposts, "repost", userID, postID)
}

func (m *memLedger) RemoveRepost(userID, postID uint) (counts.Counts, error) {
	return m.removeToggle(m.reposts, "repost", userID, postID)
}

func (m *memLedger) AddComment(userID, postID uint, content string) (*Comment, counts.Counts, error) {
	if err := m.checkRefs(userID, postID); err != nil {
		return nil, counts.Counts{}, err
	}
	m.clock = m.clock.Add(time.Second)
	cm := Comment{
		ID:        m.nextID,
		PostID:    postID,
		UserID:    userID,
		User:      user.User{ID: userID},
		Content:   content,
		CreatedAt: m.clock,
	}
	m.nextID++
	m.comments = append(m.comments, cm)
	return &cm, m.countsFor(postID), nil
}

func (m *memLedger) ListComments(postID uint) ([]Comment, error) {
	var out []Comment
	for _, cm := range m.comments {
		if cm.PostID == postID {
			out = append(out, cm)
		}
	}
	return out, nil
}

// memPosts serves post views so the service can embed the updated post in
// each mutation response.
type memPosts struct {
	known map[uint]bool
}

func (m *memPosts) Create(post.CreateRequest) (*post.View, error) { panic("not used") }

func (m *memPosts) Get(id uint) (*post.View, error) {
	if !m.known[id] {
		return nil, apperr.NotFoundf("post %d not found", id)
	}
	return &post.View{Post: post.Post{ID: id}}, nil
}

func (m *memPosts) List(post.Filter) ([]post.View, error) { return nil, nil }

func newTestService(userIDs, postIDs []uint) (Service, *memLedger) {
	ledger := newMemLedger(userIDs, postIDs)
	known := map[uint]bool{}
	for _, id := range postIDs {
		known[id] = true
	}
	return NewService(ledger, &memPosts{known: known}, nil), ledger
}

func TestLikeToggle(t *testing.T) {
	const userA, userB, postP = 1, 2, 10

	t.Run("duplicate like conflicts and stores one row", func(t *testing.T) {
		svc, ledger := newTestService([]uint{userA}, []uint{postP})

		out, err := svc.Like(userA, postP)
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Post.Counts.Likes)

		_, err = svc.Like(userA, postP)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "like")
		assert.Contains(t, err.Error(), "10", "conflict names the post")
		assert.Len(t, ledger.likes, 1)
	})

	t.Run("unlike without like is not found and count holds", func(t *testing.T) {
		svc, ledger := newTestService([]uint{userA, userB}, []uint{postP})

		_, err := svc.Like(userB, postP)
		require.NoError(t, err)

		_, err = svc.Unlike(userA, postP)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, int64(1), ledger.countsFor(postP).Likes)
	})

	t.Run("two likers, one unlikes, the other remains", func(t *testing.T) {
		svc, ledger := newTestService([]uint{userA, userB}, []uint{postP})

		out, err := svc.Like(userA, postP)
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Post.Counts.Likes)

		out, err = svc.Like(userB, postP)
		require.NoError(t, err)
		assert.Equal(t, int64(2), out.Post.Counts.Likes)

		out, err = svc.Unlike(userA, postP)
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Post.Counts.Likes)

		require.Len(t, ledger.likes, 1)
		assert.True(t, ledger.likes[pair{postP, userB}], "B must be the remaining liker")
	})

	t.Run("unknown post or user is not found", func(t *testing.T) {
		svc, _ := newTestService([]uint{userA}, []uint{postP})

		_, err := svc.Like(userA, 999)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		_, err = svc.Like(777, postP)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("missing userId rejected", func(t *testing.T) {
		svc, _ := newTestService([]uint{userA}, []uint{postP})
		_, err := svc.Like(0, postP)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestRepostToggle(t *testing.T) {
	const userA, postP = 1, 10
	svc, ledger := newTestService([]uint{userA}, []uint{postP})

	out, err := svc.Repost(userA, postP)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Post.Counts.Reposts)

	_, err = svc.Repost(userA, postP)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	out, err = svc.Unrepost(userA, postP)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Post.Counts.Reposts)
	assert.Empty(t, ledger.reposts)

	_, err = svc.Unrepost(userA, postP)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCommentsAppend(t *testing.T) {
	const userA, postP = 1, 10

	t.Run("N comments produce N rows, never deduplicated", func(t *testing.T) {
		svc, _ := newTestService([]uint{userA}, []uint{postP})

		for i := 1; i <= 3; i++ {
			out, err := svc.Comment(userA, postP, "same text")
			require.NoError(t, err)
			assert.Equal(t, int64(i), out.Post.Counts.Comments)
		}

		listed, err := svc.Comments(postP)
		require.NoError(t, err)
		assert.Len(t, listed, 3)
	})

	t.Run("listed in creation order", func(t *testing.T) {
		svc, _ := newTestService([]uint{userA}, []uint{postP})

		for _, text := range []string{"first", "second", "third"} {
			_, err := svc.Comment(userA, postP, text)
			require.NoError(t, err)
		}

		listed, err := svc.Comments(postP)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "first", listed[0].Content)
		assert.Equal(t, "third", listed[2].Content)
		assert.True(t, listed[0].CreatedAt.Before(listed[2].CreatedAt))
	})

	t.Run("blank content rejected", func(t *testing.T) {
		svc, ledger := newTestService([]uint{userA}, []uint{postP})
		_, err := svc.Comment(userA, postP, "  ")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Empty(t, ledger.comments)
	})
}

func TestMutationResponseCarriesOwnCounts(t *testing.T) {
	// A caller must never observe a count that predates its own committed
	// mutation, even across relation kinds.
	const userA, postP = 1, 10
	svc, _ := newTestService([]uint{userA}, []uint{postP})

	like, err := svc.Like(userA, postP)
	require.NoError(t, err)
	comment, err := svc.Comment(userA, postP, "hi")
	require.NoError(t, err)
	repost, err := svc.Repost(userA, postP)
	require.NoError(t, err)

	assert.Equal(t, counts.Counts{Likes: 1}, like.Post.Counts)
	assert.Equal(t, counts.Counts{Likes: 1, Comments: 1}, comment.Post.Counts)
	assert.Equal(t, counts.Counts{Likes: 1, Comments: 1, Reposts: 1}, repost.Post.Counts)
}
