package feedback

import "social-service/internal/post"

type LedgerRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

type CommentRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// PostResponse embeds the updated post with its fresh counts, so a caller
// never observes a count that predates its own mutation.
type PostResponse struct {
	Post post.View `json:"post"`
}

type CommentResponse struct {
	Comment Comment   `json:"comment"`
	Post    post.View `json:"post"`
}
