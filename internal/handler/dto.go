package handler

import (
    "time"

    "github.com/iliyamo/shopping-lists/internal/model"
)

// ----- response DTOs -----

type userResp struct {
    ID         uint64     `json:"id"`
    Username   string     `json:"username"`
    Email      string     `json:"email"`
    FullName   string     `json:"full_name"`
    IsActive   bool       `json:"is_active"`
    CreatedAt  time.Time  `json:"created_at"`
    LastAccess *time.Time `json:"last_access"`
}

func toUserResp(u model.User) userResp {
    return userResp{
        ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName,
        IsActive: u.IsActive, CreatedAt: u.CreatedAt, LastAccess: u.LastAccess,
    }
}

type listResp struct {
    ID             uint64    `json:"id"`
    Name           string    `json:"nombre"`
    CreatedAt      time.Time `json:"fecha_creacion"`
    TotalItems     int       `json:"total_items"`
    CompletedItems int       `json:"completed_items"`
}

func toListResp(l *model.List) listResp {
    return listResp{
        ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt,
        TotalItems: l.TotalItems, CompletedItems: l.CompletedItems,
    }
}

type itemResp struct {
    ID        uint64 `json:"id"`
    ListID    uint64 `json:"lista_id"`
    Name      string `json:"nombre"`
    Quantity  int    `json:"cantidad"`
    Category  string `json:"categoria"`
    Priority  int    `json:"prioridad"`
    Completed bool   `json:"completed"`
}

func toItemResp(it *model.Item) itemResp {
    return itemResp{
        ID: it.ID, ListID: it.ListID, Name: it.Name, Quantity: it.Quantity,
        Category: it.Category, Priority: it.Priority, Completed: it.Completed,
    }
}
