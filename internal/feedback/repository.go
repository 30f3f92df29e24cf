package feedback

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social-service/internal/counts"
	"social-service/internal/post"
	"social-service/internal/shared/apperr"
	"social-service/internal/user"
)

type Repository interface {
	AddLike(userID, postID uint) (counts.Counts, error)
	RemoveLike(userID, postID uint) (counts.Counts, error)
	AddRepost(userID, postID uint) (counts.Counts, error)
	RemoveRepost(userID, postID uint) (counts.Counts, error)
	AddComment(userID, postID uint, content string) (*Comment, counts.Counts, error)
	ListComments(postID uint) ([]Comment, error)
}

type repository struct {
	db  *gorm.DB
	agg *counts.Aggregator
}

func NewRepository(db *gorm.DB, agg *counts.Aggregator) Repository {
	return &repository{db: db, agg: agg}
}

func (r *repository) AddLike(userID, postID uint) (counts.Counts, error) {
	return r.addToggle("like", &Like{PostID: postID, UserID: userID}, userID, postID)
}

func (r *repository) RemoveLike(userID, postID uint) (counts.Counts, error) {
	return r.removeToggle("like", &Like{}, userID, postID)
}

func (r *repository) AddRepost(userID, postID uint) (counts.Counts, error) {
	return r.addToggle("repost", &Repost{PostID: postID, UserID: userID}, userID, postID)
}

func (r *repository) RemoveRepost(userID, postID uint) (counts.Counts, error) {
	return r.removeToggle("repost", &Repost{}, userID, postID)
}

// addToggle inserts one row of a single-slot relation. The mutation and the
// count read commit as one transaction, so the returned counts always
// reflect the caller's own write.
func (r *repository) addToggle(relation string, rec any, userID, postID uint) (counts.Counts, error) {
	var c counts.Counts
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureRefs(tx, userID, postID); err != nil {
			return err
		}
		if err := tx.Create(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflictf("post %d already has a %s by user %d", postID, relation, userID)
			}
			return apperr.Internal(err, "failed to add "+relation)
		}
		var err error
		c, err = r.agg.ForTx(tx, postID)
		return err
	})
	if err != nil {
		return counts.Counts{}, err
	}
	r.agg.Refresh(context.Background(), postID, c)
	return c, nil
}

func (r *repository) removeToggle(relation string, model any, userID, postID uint) (counts.Counts, error) {
	var c counts.Counts
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(model)
		if res.Error != nil {
			return apperr.Internal(res.Error, "failed to remove "+relation)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundf("no %s by user %d on post %d", relation, userID, postID)
		}
		var err error
		c, err = r.agg.ForTx(tx, postID)
		return err
	})
	if err != nil {
		return counts.Counts{}, err
	}
	r.agg.Refresh(context.Background(), postID, c)
	return c, nil
}

func (r *repository) AddComment(userID, postID uint, content string) (*Comment, counts.Counts, error) {
	cm := &Comment{PostID: postID, UserID: userID, Content: content}
	var c counts.Counts
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureRefs(tx, userID, postID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(cm).Error; err != nil {
			return apperr.Internal(err, "failed to add comment")
		}
		if err := tx.Preload("User").First(cm, cm.ID).Error; err != nil {
			return apperr.Internal(err, "failed to load comment")
		}
		var err error
		c, err = r.agg.ForTx(tx, postID)
		return err
	})
	if err != nil {
		return nil, counts.Counts{}, err
	}
	r.agg.Refresh(context.Background(), postID, c)
	return cm, c, nil
}

func (r *repository) ListComments(postID uint) ([]Comment, error) {
	items := []Comment{}
	err := r.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list comments")
	}
	return items, nil
}

// ensureRefs rejects mutations against unknown users or posts before the
// insert, so referential failures surface as NotFound rather than a raw
// constraint error.
func ensureRefs(tx *gorm.DB, userID, postID uint) error {
	var n int64
	if err := tx.Model(&user.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return apperr.Internal(err, "failed to check user")
	}
	if n == 0 {
		return apperr.NotFoundf("user %d not found", userID)
	}
	if err := tx.Model(&post.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
		return apperr.Internal(err, "failed to check post")
	}
	if n == 0 {
		return apperr.NotFoundf("post %d not found", postID)
	}
	return nil
}
