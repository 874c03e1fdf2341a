package repository

import (
	"errors"
	"strings"

	"github.com/iliyamo/shopping-lists/internal/model"
)

var errEmptyItemUpdate = errors.New("repository: empty item update")

// itemColumns is the fixed mapping from patch fields to item columns.  The
// UPDATE statement is assembled only from these names, in this order.
var itemColumns = []struct {
	column string
	value  func(model.ItemPatch) (any, bool)
}{
	{"nombre", func(p model.ItemPatch) (any, bool) {
		if p.Name == nil {
			return nil, false
		}
		return *p.Name, true
	}},
	{"cantidad", func(p model.ItemPatch) (any, bool) {
		if p.Quantity == nil {
			return nil, false
		}
		return *p.Quantity, true
	}},
	{"categoria", func(p model.ItemPatch) (any, bool) {
		if p.Category == nil {
			return nil, false
		}
		return *p.Category, true
	}},
	{"prioridad", func(p model.ItemPatch) (any, bool) {
		if p.Priority == nil {
			return nil, false
		}
		return *p.Priority, true
	}},
	{"completed", func(p model.ItemPatch) (any, bool) {
		if p.Completed == nil {
			return nil, false
		}
		return *p.Completed, true
	}},
}

// buildItemUpdate returns the UPDATE statement and arguments for the
// non-nil fields of p.  The item id is always the last argument.
func buildItemUpdate(id uint64, p model.ItemPatch) (string, []any, error) {
	sets := make([]string, 0, len(itemColumns))
	args := make([]any, 0, len(itemColumns)+1)
	for _, c := range itemColumns {
		if v, ok := c.value(p); ok {
			sets = append(sets, c.column+" = ?")
			args = append(args, v)
		}
	}
	if len(sets) == 0 {
		return "", nil, errEmptyItemUpdate
	}
	args = append(args, id)
	return "UPDATE items SET " + strings.Join(sets, ", ") + " WHERE id = ?", args, nil
}
