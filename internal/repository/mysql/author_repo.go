package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/useradmin/internal/datamodels/author"
)

type authorRepo struct {
	db *gorm.DB
}

// NewAuthorRepository creates the author repository.
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepo{db: db}
}

func (r *authorRepo) Create(ctx context.Context, a *author.Author) error {
	return translateErr(r.db.WithContext(ctx).Create(a).Error, "username")
}

func (r *authorRepo) GetByUsername(ctx context.Context, username string) (*author.Author, error) {
	var a author.Author
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, translateErr(err, "username")
	}
	return &a, nil
}
