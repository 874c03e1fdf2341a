package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/shopping-lists/internal/model"
)

// ItemRepo provides item persistence.  Items carry no owner column; every
// method authorizes through the owning list.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo with the given DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemSelect = `SELECT i.id, i.lista_id, i.nombre, i.cantidad, i.categoria, i.prioridad, COALESCE(i.completed, FALSE)
	FROM items i`

const (
	qItemByIDAndOwner = itemSelect + `
	JOIN listas l ON l.id = i.lista_id
	WHERE i.id = ? AND l.user_id = ?`
	qItemByIDAndOwnerLocked = qItemByIDAndOwner + " FOR UPDATE"
	qItemsByList            = itemSelect + `
	WHERE i.lista_id = ?
	ORDER BY i.prioridad DESC, i.id ASC`
)

func scanItem(s interface{ Scan(...any) error }, it *model.Item) error {
	return s.Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Category, &it.Priority, &it.Completed)
}

// resolveItem returns the item only if its list belongs to userID.
func resolveItem(ctx context.Context, q DBTX, id, userID uint64, lock bool) (*model.Item, error) {
	query := qItemByIDAndOwner
	if lock {
		query = qItemByIDAndOwnerLocked
	}
	var it model.Item
	if err := scanItem(q.QueryRowContext(ctx, query, id, userID), &it); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func insertItem(ctx context.Context, q DBTX, it *model.Item) error {
	const qInsert = `INSERT INTO items (lista_id, nombre, cantidad, categoria, prioridad, completed)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, qInsert, it.ListID, it.Name, it.Quantity, it.Category, it.Priority, it.Completed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// Resolve fetches an item but only if the list that holds it belongs to
// userID.  Missing and foreign items both yield ErrNotFound.
func (r *ItemRepo) Resolve(ctx context.Context, id, userID uint64) (*model.Item, error) {
	return resolveItem(ctx, r.db, id, userID, false)
}

// Create adds an item to a list owned by userID.  The list row is locked
// while the item is inserted so a concurrent delete cannot orphan it.
func (r *ItemRepo) Create(ctx context.Context, userID uint64, it *model.Item) error {
	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		if _, err := resolveList(ctx, tx, it.ListID, userID, true); err != nil {
			return err
		}
		return insertItem(ctx, tx, it)
	})
}

// ListByList returns the items of a list owned by userID, highest priority
// first and in insertion order within a priority.
func (r *ItemRepo) ListByList(ctx context.Context, listID, userID uint64) ([]*model.Item, error) {
	if _, err := resolveList(ctx, r.db, listID, userID, false); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, qItemsByList, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Item{}
	for rows.Next() {
		it := new(model.Item)
		if err := scanItem(rows, it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a validated partial update to an item in listID owned by
// userID.  Only the patched columns are written.
func (r *ItemRepo) Update(ctx context.Context, userID, listID, itemID uint64, patch model.ItemPatch) (*model.Item, error) {
	return r.update(ctx, userID, listID, itemID, patch)
}

// SetCompleted flips the completed flag of an item owned by userID,
// whichever list holds it.
func (r *ItemRepo) SetCompleted(ctx context.Context, userID, itemID uint64, completed bool) (*model.Item, error) {
	return r.update(ctx, userID, 0, itemID, model.ItemPatch{Completed: &completed})
}

// update resolves the item inside the transaction and writes the patch.  A
// listID of zero skips the list match.
func (r *ItemRepo) update(ctx context.Context, userID, listID, itemID uint64, patch model.ItemPatch) (*model.Item, error) {
	query, args, err := buildItemUpdate(itemID, patch)
	if err != nil {
		return nil, err
	}
	var out *model.Item
	err = WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		it, err := resolveItem(ctx, tx, itemID, userID, true)
		if err != nil {
			return err
		}
		if listID != 0 && it.ListID != listID {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		patch.Apply(it)
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
