package user

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social-service/internal/shared/apperr"
)

type Repository interface {
	Upsert(u *User) (*User, error)
	FindByAuthID(authID string) (*User, error)
	FindByID(id uint) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts the user or, when the auth id is already known, refreshes
// the mutable fields. The unique index on auth_id makes concurrent resolves
// for the same principal converge on a single row.
func (r *repository) Upsert(u *User) (*User, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "auth_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "avatar_url", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to resolve user")
	}
	// The conflict path does not report the surviving row's id; re-read it.
	return r.FindByAuthID(u.AuthID)
}

func (r *repository) FindByAuthID(authID string) (*User, error) {
	var u User
	if err := r.db.Where("auth_id = ?", authID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Internal(err, "failed to load user")
	}
	return &u, nil
}

func (r *repository) FindByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user %d not found", id)
		}
		return nil, apperr.Internal(err, "failed to load user")
	}
	return &u, nil
}
