package mysql

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/datamodels/author"
	"github.com/example/useradmin/internal/datamodels/user"
	"github.com/example/useradmin/internal/errs"
)

// Open connects to MySQL and migrates the table structure. The returned
// handle is passed to the repositories explicitly; there is no package
// global.
func Open(cfg *config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := db.AutoMigrate(&user.User{}, &author.Author{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

// translateErr maps engine errors onto the closed error set once, at the
// storage boundary. conflictField names the unique column of the table the
// query touched.
func translateErr(err error, conflictField string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &errs.ConflictError{Field: conflictField}
	default:
		return fmt.Errorf("%w: %v", errs.ErrStorage, err)
	}
}
