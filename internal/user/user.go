package user

import "time"

// User is an internal record for an externally authenticated principal.
// AuthID is the identity provider's stable id; everything else is mutable
// and refreshed on every resolve.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthID    string    `gorm:"uniqueIndex;size:64;not null" json:"auth_id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
