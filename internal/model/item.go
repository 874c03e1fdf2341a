package model

// Item is a single entry within a list.  Its effective owner is the owner
// of ListID; every access goes through the list.
type Item struct {
    ID        uint64 // items.id
    ListID    uint64 // items.lista_id
    Name      string // items.nombre
    Quantity  int    // items.cantidad
    Category  string // items.categoria
    Priority  int    // items.prioridad
    Completed bool   // items.completed (NULL in legacy rows reads as false)
}

// ItemPatch carries the fields of a partial item update.  A nil field is
// left untouched in storage.
type ItemPatch struct {
    Name      *string
    Quantity  *int
    Category  *string
    Priority  *int
    Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
    return p.Name == nil && p.Quantity == nil && p.Category == nil && p.Priority == nil && p.Completed == nil
}

// Apply copies the non-nil fields of p onto it.
func (p ItemPatch) Apply(it *Item) {
    if p.Name != nil {
        it.Name = *p.Name
    }
    if p.Quantity != nil {
        it.Quantity = *p.Quantity
    }
    if p.Category != nil {
        it.Category = *p.Category
    }
    if p.Priority != nil {
        it.Priority = *p.Priority
    }
    if p.Completed != nil {
        it.Completed = *p.Completed
    }
}
