package author

import (
	"context"
	"time"
)

// Author is an authentication principal, separate from the managed User
// records. Password holds the bcrypt hash; the plaintext never reaches
// storage and is excluded from every JSON rendering.
type Author struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Email       string    `gorm:"size:191" json:"email"`
	DisplayName string    `gorm:"size:64" json:"displayName,omitempty"`
	Bio         string    `gorm:"size:255" json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository is the storage contract for authors. Lookup is read-only
// during authentication.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByUsername(ctx context.Context, username string) (*Author, error)
}
