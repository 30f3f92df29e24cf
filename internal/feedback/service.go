package feedback

import (
	"context"
	"log"
	"strings"

	"social-service/internal/counts"
	"social-service/internal/kafka"
	"social-service/internal/post"
	"social-service/internal/shared/apperr"
)

type Service interface {
	Like(userID, postID uint) (*PostResponse, error)
	Unlike(userID, postID uint) (*PostResponse, error)
	Repost(userID, postID uint) (*PostResponse, error)
	Unrepost(userID, postID uint) (*PostResponse, error)
	Comment(userID, postID uint, content string) (*CommentResponse, error)
	Comments(postID uint) ([]Comment, error)
}

type service struct {
	repo   Repository
	posts  post.Service
	events kafka.Producer
}

func NewService(repo Repository, posts post.Service, events kafka.Producer) Service {
	return &service{repo: repo, posts: posts, events: events}
}

func (s *service) Like(userID, postID uint) (*PostResponse, error) {
	return s.toggle(userID, postID, "post.liked", s.repo.AddLike)
}

func (s *service) Unlike(userID, postID uint) (*PostResponse, error) {
	return s.toggle(userID, postID, "post.unliked", s.repo.RemoveLike)
}

func (s *service) Repost(userID, postID uint) (*PostResponse, error) {
	return s.toggle(userID, postID, "post.reposted", s.repo.AddRepost)
}

func (s *service) Unrepost(userID, postID uint) (*PostResponse, error) {
	return s.toggle(userID, postID, "post.unreposted", s.repo.RemoveRepost)
}

func (s *service) toggle(userID, postID uint, kind string, op func(uint, uint) (counts.Counts, error)) (*PostResponse, error) {
	if userID == 0 {
		return nil, apperr.Validationf("missing userId")
	}
	c, err := op(userID, postID)
	if err != nil {
		return nil, err
	}
	v, err := s.postView(postID, c)
	if err != nil {
		return nil, err
	}
	s.publish(kind, postID, userID)
	return &PostResponse{Post: *v}, nil
}

func (s *service) Comment(userID, postID uint, content string) (*CommentResponse, error) {
	if userID == 0 {
		return nil, apperr.Validationf("missing userId")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validationf("missing content")
	}
	cm, c, err := s.repo.AddComment(userID, postID, content)
	if err != nil {
		return nil, err
	}
	v, err := s.postView(postID, c)
	if err != nil {
		return nil, err
	}
	s.publish("post.commented", postID, userID)
	return &CommentResponse{Comment: *cm, Post: *v}, nil
}

func (s *service) Comments(postID uint) ([]Comment, error) {
	return s.repo.ListComments(postID)
}

// postView joins the post and author, then pins the counts to the values
// read inside the mutation's transaction.
func (s *service) postView(postID uint, c counts.Counts) (*post.View, error) {
	v, err := s.posts.Get(postID)
	if err != nil {
		return nil, err
	}
	v.Counts = c
	return v, nil
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
