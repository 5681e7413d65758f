package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/useradmin/internal/datamodels/user"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepo{db: db}
}

// List returns one page ordered by id ascending plus the total row count.
func (r *userRepo) List(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateErr(err, "email")
	}
	var list []*user.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, translateErr(err, "email")
	}
	return list, total, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translateErr(err, "email")
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	return translateErr(r.db.WithContext(ctx).Create(u).Error, "email")
}

// Update is a whole-record replace. Load-then-save keeps re-applying an
// identical update a success; RowsAffected is 0 on a no-op write in MySQL
// and cannot distinguish that from a missing row.
func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	var current user.User
	if err := r.db.WithContext(ctx).First(&current, u.ID).Error; err != nil {
		return translateErr(err, "email")
	}
	current.Username = u.Username
	current.Email = u.Email
	if err := r.db.WithContext(ctx).Save(&current).Error; err != nil {
		return translateErr(err, "email")
	}
	*u = current
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&user.User{}, id)
	if res.Error != nil {
		return translateErr(res.Error, "email")
	}
	if res.RowsAffected == 0 {
		return translateErr(gorm.ErrRecordNotFound, "email")
	}
	return nil
}

// Upsert writes the row keyed by id, updating username/email when it
// already exists. Last write wins. Update-then-insert inside a
// transaction rather than ON DUPLICATE KEY UPDATE: MySQL fires that
// clause on any unique key, so a colliding email would rewrite the
// other row instead of conflicting.
func (r *userRepo) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current user.User
		err := tx.First(&current, u.ID).Error
		if err == nil {
			current.Username = u.Username
			current.Email = u.Email
			if err := tx.Save(&current).Error; err != nil {
				return err
			}
			*u = current
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, translateErr(err, "email")
	}
	return u, nil
}
