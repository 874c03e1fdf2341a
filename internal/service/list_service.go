package service

import (
	"context"
	"time"

	"github.com/iliyamo/shopping-lists/internal/events"
	"github.com/iliyamo/shopping-lists/internal/model"
	"github.com/iliyamo/shopping-lists/internal/validation"
)

// ListService orchestrates list and item operations for one authenticated
// user.  Input is validated before the store is touched; ownership is
// checked by the store inside the same transaction as the mutation.
// Activity events are published only after a mutation has committed.
type ListService struct {
	lists   ListStore
	items   ItemStore
	events  events.Publisher
	timeout time.Duration
	now     func() time.Time
}

func NewListService(lists ListStore, items ItemStore, pub events.Publisher) *ListService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &ListService{
		lists:   lists,
		items:   items,
		events:  pub,
		timeout: DefaultStoreTimeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *ListService) publish(ctx context.Context, ev events.ActivityEvent) {
	ev.OccurredAt = s.now()
	s.events.Publish(ctx, ev)
}

// CreateList validates the name and stores a new list.
func (s *ListService) CreateList(ctx context.Context, userID uint64, name any) (*model.List, error) {
	clean, err := validation.ValidateList(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	l := &model.List{Name: clean, UserID: userID}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, storeErr("create list", err)
	}
	s.publish(ctx, events.ActivityEvent{Type: events.ListCreated, UserID: userID, ListID: l.ID, Name: l.Name})
	return l, nil
}

// ListLists returns every list of the user with its item counts.
func (s *ListService) ListLists(ctx context.Context, userID uint64) ([]*model.List, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	lists, err := s.lists.ListByOwner(ctx, userID)
	return lists, storeErr("list lists", err)
}

// DeleteList removes a list and all of its items.
func (s *ListService) DeleteList(ctx context.Context, userID, listID uint64) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.lists.DeleteByIDAndOwner(ctx, listID, userID); err != nil {
		return storeErr("delete list", err)
	}
	s.publish(ctx, events.ActivityEvent{Type: events.ListDeleted, UserID: userID, ListID: listID})
	return nil
}

// UpdateList renames a list and/or replaces its item set atomically.
func (s *ListService) UpdateList(ctx context.Context, userID, listID uint64, raw map[string]any) (*model.List, error) {
	upd, err := validation.BuildListUpdate(raw)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	l, err := s.lists.Update(ctx, listID, userID, upd)
	if err != nil {
		return nil, storeErr("update list", err)
	}
	return l, nil
}

// AddItem validates all four item fields and appends the item to a list
// owned by the user.
func (s *ListService) AddItem(ctx context.Context, userID, listID uint64, raw map[string]any) (*model.Item, error) {
	it, err := validation.ValidateItem(raw)
	if err != nil {
		return nil, err
	}
	it.ListID = listID
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.items.Create(ctx, userID, &it); err != nil {
		return nil, storeErr("add item", err)
	}
	s.publish(ctx, events.ActivityEvent{Type: events.ItemAdded, UserID: userID, ListID: listID, ItemID: it.ID, Name: it.Name})
	return &it, nil
}

// ListItems returns the items of a list, highest priority first.
func (s *ListService) ListItems(ctx context.Context, userID, listID uint64) ([]*model.Item, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	items, err := s.items.ListByList(ctx, listID, userID)
	return items, storeErr("list items", err)
}

// UpdateItem applies a partial update to one item of a list.  Fields not
// present in raw are left unchanged.
func (s *ListService) UpdateItem(ctx context.Context, userID, listID, itemID uint64, raw map[string]any) (*model.Item, error) {
	patch, err := validation.BuildItemPatch(raw)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	it, err := s.items.Update(ctx, userID, listID, itemID, patch)
	if err != nil {
		return nil, storeErr("update item", err)
	}
	if patch.Completed != nil {
		s.publishCompleted(ctx, userID, it)
	}
	return it, nil
}

// SetItemCompleted sets the completed flag of an item owned by the user.
func (s *ListService) SetItemCompleted(ctx context.Context, userID, itemID uint64, raw any) (*model.Item, error) {
	done, err := validation.ParseCompleted(raw)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	it, err := s.items.SetCompleted(ctx, userID, itemID, done)
	if err != nil {
		return nil, storeErr("set item completed", err)
	}
	s.publishCompleted(ctx, userID, it)
	return it, nil
}

func (s *ListService) publishCompleted(ctx context.Context, userID uint64, it *model.Item) {
	done := it.Completed
	s.publish(ctx, events.ActivityEvent{
		Type: events.ItemCompleted, UserID: userID, ListID: it.ListID, ItemID: it.ID, Completed: &done,
	})
}
