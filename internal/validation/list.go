package validation

import (
	"fmt"

	"github.com/iliyamo/shopping-lists/internal/model"
)

// FieldItems is the body key carrying a replacement item set.
const FieldItems = "items"

// BuildListUpdate validates the body of a list update.  A present nombre
// renames the list; a present items array replaces the whole item set, each
// entry validated with defaults and its reasons prefixed "Producto N: ".
// An empty array clears the list.  A body with neither key is rejected with
// ErrNothingToUpdate.
func BuildListUpdate(raw map[string]any) (model.ListUpdate, error) {
	var (
		c   Collector
		upd model.ListUpdate
	)
	nameRaw, hasName := raw[FieldName]
	itemsRaw := raw[FieldItems]
	if !hasName && itemsRaw == nil {
		return upd, ErrNothingToUpdate
	}
	if hasName {
		name := c.Text(KindListName, FieldName, nameRaw)
		upd.Name = &name
	}
	if itemsRaw != nil {
		entries, ok := itemsRaw.([]any)
		if !ok {
			c.errs = append(c.errs, &FieldError{Field: FieldItems, Reason: "El campo items debe ser una lista de productos"})
		}
		upd.ReplaceItems = ok
		upd.Items = make([]model.Item, 0, len(entries))
		for i, e := range entries {
			prefix := fmt.Sprintf("Producto %d: ", i+1)
			m, ok := e.(map[string]any)
			if !ok {
				c.errs = append(c.errs, &FieldError{Field: FieldItems, Reason: prefix + "debe ser un objeto"})
				continue
			}
			it, err := ValidateItemWithDefaults(m)
			if err != nil {
				c.Merge(prefix, err)
				continue
			}
			upd.Items = append(upd.Items, it)
		}
	}
	if err := c.Err(); err != nil {
		return model.ListUpdate{}, err
	}
	return upd, nil
}
