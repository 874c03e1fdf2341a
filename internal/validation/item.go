package validation

import (
	"github.com/iliyamo/shopping-lists/internal/model"
)

// Item field names as they appear in request bodies.
const (
	FieldName      = "nombre"
	FieldQuantity  = "cantidad"
	FieldCategory  = "categoria"
	FieldPriority  = "prioridad"
	FieldCompleted = "completed"
)

// Defaults applied to omitted item fields during a full item-set replacement.
const (
	DefaultQuantity = 1
	DefaultCategory = "Otros"
	DefaultPriority = 1
)

// ValidateList validates the name of a new or renamed list.
func ValidateList(raw any) (string, error) {
	var c Collector
	name := c.Text(KindListName, FieldName, raw)
	return name, c.Err()
}

// ValidateItem validates all four fields of a new item and aggregates every
// failure.  The returned item has no ID or ListID.
func ValidateItem(raw map[string]any) (model.Item, error) {
	var c Collector
	it := model.Item{
		Name:     c.Text(KindItemName, FieldName, raw[FieldName]),
		Quantity: c.Number(KindQuantity, FieldQuantity, raw[FieldQuantity]),
		Category: c.Text(KindCategory, FieldCategory, raw[FieldCategory]),
		Priority: c.Number(KindPriority, FieldPriority, raw[FieldPriority]),
	}
	return it, c.Err()
}

// ValidateItemWithDefaults is ValidateItem for item-set replacement: an
// omitted quantity, category or priority takes its default and an optional
// completed flag is honored.  A key sent as null is not omitted and fails
// as required.  The name is still required.
func ValidateItemWithDefaults(raw map[string]any) (model.Item, error) {
	withDefaults := make(map[string]any, len(raw)+3)
	for k, v := range raw {
		withDefaults[k] = v
	}
	if _, ok := raw[FieldQuantity]; !ok {
		withDefaults[FieldQuantity] = DefaultQuantity
	}
	if _, ok := raw[FieldCategory]; !ok {
		withDefaults[FieldCategory] = DefaultCategory
	}
	if _, ok := raw[FieldPriority]; !ok {
		withDefaults[FieldPriority] = DefaultPriority
	}
	it, err := ValidateItem(withDefaults)
	if err != nil {
		return it, err
	}
	if v, ok := raw[FieldCompleted]; ok && v != nil {
		done, ok := v.(bool)
		if !ok {
			return it, Errors{completedError()}
		}
		it.Completed = done
	}
	return it, nil
}

// BuildItemPatch turns a sparse body into an ItemPatch.  Only recognized
// fields that are present are validated; unknown keys are ignored.  Any
// failure rejects the whole patch with every reason collected.
func BuildItemPatch(raw map[string]any) (model.ItemPatch, error) {
	var (
		c     Collector
		patch model.ItemPatch
	)
	if v, ok := raw[FieldName]; ok {
		if s := c.Text(KindItemName, FieldName, v); s != "" {
			patch.Name = &s
		}
	}
	if v, ok := raw[FieldQuantity]; ok {
		if n := c.Number(KindQuantity, FieldQuantity, v); n != 0 {
			patch.Quantity = &n
		}
	}
	if v, ok := raw[FieldCategory]; ok {
		if s := c.Text(KindCategory, FieldCategory, v); s != "" {
			patch.Category = &s
		}
	}
	if v, ok := raw[FieldPriority]; ok {
		if n := c.Number(KindPriority, FieldPriority, v); n != 0 {
			patch.Priority = &n
		}
	}
	if v, ok := raw[FieldCompleted]; ok {
		done, isBool := v.(bool)
		if !isBool {
			c.errs = append(c.errs, completedError())
		} else {
			patch.Completed = &done
		}
	}
	if err := c.Err(); err != nil {
		return model.ItemPatch{}, err
	}
	if patch.Empty() {
		return patch, ErrNothingToUpdate
	}
	return patch, nil
}

// ParseCompleted validates the body of a status toggle.
func ParseCompleted(raw any) (bool, error) {
	done, ok := raw.(bool)
	if !ok {
		return false, Errors{completedError()}
	}
	return done, nil
}

func completedError() *FieldError {
	return &FieldError{Field: FieldCompleted, Reason: "El campo completed debe ser verdadero o falso"}
}
