// Package repository contains data access logic separated from HTTP handlers.
// This file defines the list repository.  A list belongs to exactly one user
// and every query that targets a single list is scoped by that owner.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/shopping-lists/internal/model"
)

// ListRepo encapsulates all database queries related to lists.
type ListRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewListRepo constructs a ListRepo with the provided DB handle.
func NewListRepo(db *sql.DB) *ListRepo {
	return &ListRepo{db: db}
}

const (
	qListByIDAndOwner       = "SELECT id, nombre, user_id, fecha_creacion FROM listas WHERE id = ? AND user_id = ?"
	qListByIDAndOwnerLocked = qListByIDAndOwner + " FOR UPDATE"
)

// resolveList returns the list only if it belongs to userID.  A missing list
// and a list owned by someone else both yield ErrNotFound.  With lock set the
// row stays locked until the enclosing transaction ends.
func resolveList(ctx context.Context, q DBTX, id, userID uint64, lock bool) (*model.List, error) {
	query := qListByIDAndOwner
	if lock {
		query = qListByIDAndOwnerLocked
	}
	var l model.List
	if err := q.QueryRowContext(ctx, query, id, userID).Scan(&l.ID, &l.Name, &l.UserID, &l.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Resolve fetches a list by id but only if it belongs to the specified
// owner.  If the list doesn't exist or is owned by someone else,
// ErrNotFound is returned.
func (r *ListRepo) Resolve(ctx context.Context, id, userID uint64) (*model.List, error) {
	return resolveList(ctx, r.db, id, userID, false)
}

// Create inserts a new list.  On success the list's ID and CreatedAt
// fields are populated from the database.  The insert and the read-back
// share one transaction, so a failed read leaves no list behind.
func (r *ListRepo) Create(ctx context.Context, l *model.List) error {
	const (
		qInsert = "INSERT INTO listas (nombre, user_id) VALUES (?, ?)"
		qSelect = "SELECT fecha_creacion FROM listas WHERE id = ?"
	)
	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, qInsert, l.Name, l.UserID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, qSelect, id).Scan(&l.CreatedAt); err != nil {
			return err
		}
		l.ID = uint64(id)
		return nil
	})
}

// ListByOwner returns all lists of a user ordered by id, each with the
// number of items and completed items it holds.
func (r *ListRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.List, error) {
	const q = `SELECT l.id, l.nombre, l.user_id, l.fecha_creacion,
	                  COUNT(i.id), COALESCE(SUM(CASE WHEN COALESCE(i.completed, FALSE) THEN 1 ELSE 0 END), 0)
	           FROM listas l LEFT JOIN items i ON i.lista_id = l.id
	           WHERE l.user_id = ?
	           GROUP BY l.id, l.nombre, l.user_id, l.fecha_creacion
	           ORDER BY l.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.List{}
	for rows.Next() {
		l := new(model.List)
		if err := rows.Scan(&l.ID, &l.Name, &l.UserID, &l.CreatedAt, &l.TotalItems, &l.CompletedItems); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndOwner removes a list and all of its items provided it
// belongs to the specified owner.  Ownership is verified before anything
// is deleted; a missing or foreign list yields ErrNotFound.  Items and
// list are removed in one transaction, so either both are gone or neither.
func (r *ListRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		if _, err := resolveList(ctx, tx, id, ownerID, true); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE lista_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM listas WHERE id = ? AND user_id = ?", id, ownerID)
		return err
	})
}

// Update renames a list and/or replaces its entire item set in one
// transaction.  Items must already be validated.  The updated list is
// returned with its new item counts.
func (r *ListRepo) Update(ctx context.Context, id, ownerID uint64, upd model.ListUpdate) (*model.List, error) {
	var out *model.List
	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		l, err := resolveList(ctx, tx, id, ownerID, true)
		if err != nil {
			return err
		}
		if upd.Name != nil {
			if _, err := tx.ExecContext(ctx, "UPDATE listas SET nombre = ? WHERE id = ?", *upd.Name, id); err != nil {
				return err
			}
			l.Name = *upd.Name
		}
		if upd.ReplaceItems {
			if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE lista_id = ?", id); err != nil {
				return err
			}
			for i := range upd.Items {
				it := upd.Items[i]
				it.ListID = id
				if err := insertItem(ctx, tx, &it); err != nil {
					return err
				}
			}
		}
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*), COALESCE(SUM(CASE WHEN COALESCE(completed, FALSE) THEN 1 ELSE 0 END), 0) FROM items WHERE lista_id = ?",
			id).Scan(&l.TotalItems, &l.CompletedItems); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
