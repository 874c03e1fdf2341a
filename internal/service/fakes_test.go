package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/shopping-lists/internal/events"
	"github.com/iliyamo/shopping-lists/internal/model"
	"github.com/iliyamo/shopping-lists/internal/repository"
)

// fakeDB is an in-memory stand-in for the MySQL repositories with the same
// ownership rules: a foreign row is indistinguishable from a missing one.
type fakeDB struct {
	mu       sync.Mutex
	users    map[uint64]model.User
	lists    map[uint64]*model.List
	items    map[uint64]*model.Item
	nextID   uint64
	failWith error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users: map[uint64]model.User{},
		lists: map[uint64]*model.List{},
		items: map[uint64]*model.Item{},
	}
}

func (d *fakeDB) id() uint64 { d.nextID++; return d.nextID }

func (d *fakeDB) fail() error {
	err := d.failWith
	d.failWith = nil
	return err
}

type fakeUsers struct{ *fakeDB }
type fakeLists struct{ *fakeDB }
type fakeItems struct{ *fakeDB }

func (f fakeUsers) Create(_ context.Context, u model.User) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return 0, err
	}
	for _, o := range f.users {
		if o.Username == u.Username || o.Email == strings.ToLower(u.Email) {
			return 0, repository.ErrDuplicate
		}
	}
	u.ID = f.id()
	u.Email = strings.ToLower(u.Email)
	u.IsActive = true
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u.ID, nil
}

func (f fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return false, err
	}
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return model.User{}, err
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f fakeUsers) TouchLastAccess(_ context.Context, id uint64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	u.LastAccess = &at
	f.users[id] = u
	return nil
}

func (f fakeUsers) Deactivate(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return repository.ErrNotFound
	}
	u.IsActive = false
	f.users[id] = u
	return nil
}

func (f fakeLists) Create(_ context.Context, l *model.List) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	l.ID = f.id()
	l.CreatedAt = time.Now()
	cp := *l
	f.lists[l.ID] = &cp
	return nil
}

func (f fakeLists) ListByOwner(_ context.Context, userID uint64) ([]*model.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	out := []*model.List{}
	for _, l := range f.lists {
		if l.UserID != userID {
			continue
		}
		cp := *l
		for _, it := range f.items {
			if it.ListID == l.ID {
				cp.TotalItems++
				if it.Completed {
					cp.CompletedItems++
				}
			}
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) ownedList(id, userID uint64) (*model.List, error) {
	l, ok := f.lists[id]
	if !ok || l.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

func (f fakeLists) DeleteByIDAndOwner(_ context.Context, id, ownerID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.ownedList(id, ownerID); err != nil {
		return err
	}
	for iid, it := range f.items {
		if it.ListID == id {
			delete(f.items, iid)
		}
	}
	delete(f.lists, id)
	return nil
}

func (f fakeLists) Update(_ context.Context, id, ownerID uint64, upd model.ListUpdate) (*model.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, err := f.ownedList(id, ownerID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		l.Name = *upd.Name
	}
	if upd.ReplaceItems {
		for iid, it := range f.items {
			if it.ListID == id {
				delete(f.items, iid)
			}
		}
		for _, it := range upd.Items {
			it := it
			it.ID = f.id()
			it.ListID = id
			f.items[it.ID] = &it
		}
	}
	cp := *l
	for _, it := range f.items {
		if it.ListID == id {
			cp.TotalItems++
			if it.Completed {
				cp.CompletedItems++
			}
		}
	}
	return &cp, nil
}

func (f fakeItems) Create(_ context.Context, userID uint64, it *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	if _, err := f.ownedList(it.ListID, userID); err != nil {
		return err
	}
	it.ID = f.id()
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f fakeItems) ListByList(_ context.Context, listID, userID uint64) ([]*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.ownedList(listID, userID); err != nil {
		return nil, err
	}
	out := []*model.Item{}
	for _, it := range f.items {
		if it.ListID == listID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f fakeItems) Update(_ context.Context, userID, listID, itemID uint64, patch model.ItemPatch) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[itemID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, err := f.ownedList(it.ListID, userID); err != nil {
		return nil, err
	}
	if listID != 0 && it.ListID != listID {
		return nil, repository.ErrNotFound
	}
	patch.Apply(it)
	cp := *it
	return &cp, nil
}

func (f fakeItems) SetCompleted(ctx context.Context, userID, itemID uint64, completed bool) (*model.Item, error) {
	return f.Update(ctx, userID, 0, itemID, model.ItemPatch{Completed: &completed})
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
