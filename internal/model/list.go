package model

import "time"

// List is a named shopping list owned by exactly one user.  It
// corresponds to a row in the `listas` table.  TotalItems and
// CompletedItems are not columns; they are filled by queries that
// aggregate the list's items.
type List struct {
    ID             uint64    // listas.id
    Name           string    // listas.nombre
    UserID         uint64    // listas.user_id
    CreatedAt      time.Time // listas.fecha_creacion
    TotalItems     int
    CompletedItems int
}

// ListUpdate describes a coarse list update: an optional rename and, when
// ReplaceItems is set, a full replacement of the list's item set with Items.
type ListUpdate struct {
    Name         *string
    ReplaceItems bool
    Items        []Item
}
