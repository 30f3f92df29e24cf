package post

import (
	"context"
	"log"
	"strings"

	"social-service/internal/counts"
	"social-service/internal/kafka"
	"social-service/internal/shared/apperr"
)

type Service interface {
	Create(in CreateRequest) (*View, error)
	Get(id uint) (*View, error)
	List(f Filter) ([]View, error)
}

// CountReader is the aggregator surface the feed needs; satisfied by
// counts.Aggregator.
type CountReader interface {
	For(ctx context.Context, postID uint) (counts.Counts, error)
	ForPosts(postIDs []uint) (map[uint]counts.Counts, error)
}

type service struct {
	repo   Repository
	agg    CountReader
	events kafka.Producer
}

func NewService(repo Repository, agg CountReader, events kafka.Producer) Service {
	return &service{repo: repo, agg: agg, events: events}
}

func (s *service) Create(in CreateRequest) (*View, error) {
	if in.AuthorID == 0 {
		return nil, apperr.Validationf("missing authorId")
	}
	content := strings.TrimSpace(in.Content)
	media := strings.TrimSpace(in.MediaURL)
	if content == "" && media == "" {
		return nil, apperr.Validationf("post needs content or media")
	}
	p, err := s.repo.Create(&Post{
		AuthorID: in.AuthorID,
		Content:  content,
		MediaURL: media,
	})
	if err != nil {
		return nil, err
	}
	// Re-read to join the author onto the fresh row.
	p, err = s.repo.FindByID(p.ID)
	if err != nil {
		return nil, err
	}
	s.publish("post.created", p.ID, p.AuthorID)
	return &View{Post: *p}, nil
}

func (s *service) Get(id uint) (*View, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.agg.For(context.Background(), id)
	if err != nil {
		return nil, err
	}
	return &View{Post: *p, Counts: c}, nil
}

func (s *service) List(f Filter) ([]View, error) {
	posts, err := s.repo.List(f)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	byPost, err := s.agg.ForPosts(ids)
	if err != nil {
		return nil, err
	}
	views := make([]View, len(posts))
	for i, p := range posts {
		views[i] = View{Post: p, Counts: byPost[p.ID]}
	}
	return views, nil
}

func (s *service) publish(kind string, postID, userID uint) {
	if s.events == nil {
		return
	}
	ev := kafka.Event{Kind: kind, PostID: postID, UserID: userID}
	if err := s.events.Publish(context.Background(), ev); err != nil {
		log.Printf("publish %s for post %d: %v", kind, postID, err)
	}
}
