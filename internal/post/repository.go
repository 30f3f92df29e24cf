package post

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social-service/internal/shared/apperr"
)

// Filter narrows a listing. The interacted-by variants are projections over
// the ledger tables joined back onto posts; they return the same shape as
// the default listing.
type Filter struct {
	AuthorID    uint
	LikedBy     uint
	RepostedBy  uint
	CommentedBy uint
}

type Repository interface {
	Create(p *Post) (*Post, error)
	FindByID(id uint) (*Post, error)
	List(f Filter) ([]Post, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(p *Post) (*Post, error) {
	err := r.db.Omit(clause.Associations).Create(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperr.NotFoundf("author %d not found", p.AuthorID)
		}
		return nil, apperr.Internal(err, "failed to create post")
	}
	return p, nil
}

func (r *repository) FindByID(id uint) (*Post, error) {
	var p Post
	if err := r.db.Preload("Author").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("post %d not found", id)
		}
		return nil, apperr.Internal(err, "failed to load post")
	}
	return &p, nil
}

func (r *repository) List(f Filter) ([]Post, error) {
	q := r.db.Preload("Author").Order("created_at DESC")
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.LikedBy != 0 {
		q = q.Where("id IN (SELECT post_id FROM likes WHERE user_id = ?)", f.LikedBy)
	}
	if f.RepostedBy != 0 {
		q = q.Where("id IN (SELECT post_id FROM reposts WHERE user_id = ?)", f.RepostedBy)
	}
	if f.CommentedBy != 0 {
		q = q.Where("id IN (SELECT post_id FROM comments WHERE user_id = ?)", f.CommentedBy)
	}
	var posts []Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list posts")
	}
	return posts, nil
}
