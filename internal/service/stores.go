package service

import (
	"context"
	"time"

	"github.com/iliyamo/shopping-lists/internal/model"
)

// UserStore is the user persistence used by AuthService.  It is satisfied
// by *repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	TouchLastAccess(ctx context.Context, id uint64, at time.Time) error
	Deactivate(ctx context.Context, id uint64) error
}

// ListStore is satisfied by *repository.ListRepo.
type ListStore interface {
	Create(ctx context.Context, l *model.List) error
	ListByOwner(ctx context.Context, userID uint64) ([]*model.List, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
	Update(ctx context.Context, id, ownerID uint64, upd model.ListUpdate) (*model.List, error)
}

// ItemStore is satisfied by *repository.ItemRepo.
type ItemStore interface {
	Create(ctx context.Context, userID uint64, it *model.Item) error
	ListByList(ctx context.Context, listID, userID uint64) ([]*model.Item, error)
	Update(ctx context.Context, userID, listID, itemID uint64, patch model.ItemPatch) (*model.Item, error)
	SetCompleted(ctx context.Context, userID, itemID uint64, completed bool) (*model.Item, error)
}
