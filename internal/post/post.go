package post

import (
	"time"

	"social-service/internal/user"
)

// Post is a user-authored content item. Posts are immutable after creation;
// at least one of Content and MediaURL is non-empty.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    user.User `json:"author"`
	Content   string    `gorm:"type:text" json:"content"`
	MediaURL  string    `gorm:"size:512" json:"media_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
