package models

import "time"

// Session backs one issued bearer token. The token itself is never stored,
// only its SHA-256 hash. A token is live only while a matching row exists
// with expires_at in the future; deleting the row revokes the token no
// matter how long its signature stays valid.
type Session struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
