package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/example/useradmin/internal/datamodels/user"
	"github.com/example/useradmin/internal/events"
	"github.com/example/useradmin/internal/validation"
)

// DefaultRowsPerPage is used when the caller sends no page size or an
// unparseable one.
const DefaultRowsPerPage = 6

// UserPage is one page of the listing plus the totals the table widget
// needs.
type UserPage struct {
	Users      []*user.User `json:"users"`
	TotalUsers int64        `json:"totalUsers"`
	TotalPages int64        `json:"totalPages"`
}

// UserService implements the user resource operations on top of the store.
type UserService struct {
	repo   user.Repository
	events *events.Publisher
}

// NewUserService creates the service. events may be nil.
func NewUserService(repo user.Repository, pub *events.Publisher) *UserService {
	return &UserService{repo: repo, events: pub}
}

// List returns one page ascending by id. Out-of-range paging parameters
// fall back to the defaults rather than failing.
func (s *UserService) List(ctx context.Context, pageNum, rowsPerPage int) (*UserPage, error) {
	if pageNum < 0 {
		pageNum = 0
	}
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	// keep the offset from wrapping negative on absurd page numbers
	if pageNum > math.MaxInt32/rowsPerPage {
		pageNum = 0
	}
	items, total, err := s.repo.List(ctx, pageNum*rowsPerPage, rowsPerPage)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*user.User{}
	}
	rpp := int64(rowsPerPage)
	return &UserPage{
		Users:      items,
		TotalUsers: total,
		TotalPages: (total + rpp - 1) / rpp,
	}, nil
}

// Create validates the payload and inserts. Email uniqueness rests on the
// store's unique index; the conflict error already names the field.
func (s *UserService) Create(ctx context.Context, username, email string) (*user.User, error) {
	if err := validation.ValidateUser(username, email); err != nil {
		return nil, err
	}
	u := &user.User{Username: username, Email: email}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserCreated, u)
	return u, nil
}

func (s *UserService) ReadOne(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the whole record. Both fields are required; re-applying
// an identical update yields the same stored record.
func (s *UserService) Update(ctx context.Context, id int64, username, email string) (*user.User, error) {
	if err := validation.ValidateUser(username, email); err != nil {
		return nil, err
	}
	u := &user.User{ID: id, Username: username, Email: email}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserUpdated, u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.UserDeleted, map[string]int64{"id": id})
	return nil
}

// Upsert writes the record keyed by id, creating it when absent. Takes the
// same shape as Update; last write wins.
func (s *UserService) Upsert(ctx context.Context, id int64, username, email string) (*user.User, error) {
	if err := validation.ValidateUser(username, email); err != nil {
		return nil, err
	}
	u, err := s.repo.Upsert(ctx, &user.User{ID: id, Username: username, Email: email})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserUpserted, u)
	return u, nil
}

func (s *UserService) publish(ctx context.Context, eventType string, data interface{}) {
	if err := s.events.Publish(ctx, eventType, data); err != nil {
		zap.L().Warn("audit publish failed", zap.String("event", eventType), zap.Error(err))
	}
}
