package user

import (
	"context"
	"time"
)

// User is a managed panel record. Email is the only globally unique
// attribute; the unique index is the authoritative guard against
// duplicates.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository is the storage contract for users.
type Repository interface {
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	Upsert(ctx context.Context, u *User) (*User, error)
}
