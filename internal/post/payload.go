package post

import "social-service/internal/counts"

type CreateRequest struct {
	AuthorID uint   `json:"authorId" validate:"required"`
	Content  string `json:"content"`
	MediaURL string `json:"mediaUrl"`
}

// View is the uniform read shape: the post joined with its author and the
// current aggregate counts. Every listing and every mutation response uses
// it, so callers never see a post without counts.
type View struct {
	Post
	Counts counts.Counts `json:"counts"`
}
