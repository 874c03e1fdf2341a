// Package handler defines HTTP handlers.  This file implements the list and
// item endpoints.  Every handler runs behind RequireSession; ownership is
// enforced by the service and store, and a list or item that belongs to
// someone else is answered exactly like one that does not exist.
package handler

import (
    "context"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/shopping-lists/internal/model"
    "github.com/iliyamo/shopping-lists/internal/service"
)

// ListAPI is satisfied by *service.ListService.
type ListAPI interface {
    CreateList(ctx context.Context, userID uint64, name any) (*model.List, error)
    ListLists(ctx context.Context, userID uint64) ([]*model.List, error)
    DeleteList(ctx context.Context, userID, listID uint64) error
    UpdateList(ctx context.Context, userID, listID uint64, raw map[string]any) (*model.List, error)
    AddItem(ctx context.Context, userID, listID uint64, raw map[string]any) (*model.Item, error)
    ListItems(ctx context.Context, userID, listID uint64) ([]*model.Item, error)
    UpdateItem(ctx context.Context, userID, listID, itemID uint64, raw map[string]any) (*model.Item, error)
    SetItemCompleted(ctx context.Context, userID, itemID uint64, raw any) (*model.Item, error)
}

// ListHandler serves /listas and /items.
type ListHandler struct {
    Lists ListAPI
    Log   *zap.Logger
}

func NewListHandler(lists ListAPI, log *zap.Logger) *ListHandler {
    if lists == nil {
        panic("nil list service passed to NewListHandler")
    }
    return &ListHandler{Lists: lists, Log: log}
}

// GetLists handles GET /listas.
func (h *ListHandler) GetLists(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    lists, err := h.Lists.ListLists(c.Request().Context(), uid)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    out := make([]listResp, 0, len(lists))
    for _, l := range lists {
        out = append(out, toListResp(l))
    }
    return c.JSON(http.StatusOK, out)
}

// CreateList handles POST /listas.
func (h *ListHandler) CreateList(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    body, err := bindMap(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    l, err := h.Lists.CreateList(c.Request().Context(), uid, body["nombre"])
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, toListResp(l))
}

// DeleteList handles DELETE /listas/:id.  The list's items go with it.
func (h *ListHandler) DeleteList(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    id, err := pathID(c, "id")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    if err := h.Lists.DeleteList(c.Request().Context(), uid, id); err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"mensaje": fmt.Sprintf("Lista %d eliminada correctamente", id)})
}

// UpdateList handles PUT /listas/:id with {nombre?, items?}.
func (h *ListHandler) UpdateList(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    id, err := pathID(c, "id")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    body, err := bindMap(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    l, err := h.Lists.UpdateList(c.Request().Context(), uid, id, body)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, toListResp(l))
}

// GetItems handles GET /listas/:id/items.
func (h *ListHandler) GetItems(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    id, err := pathID(c, "id")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    items, err := h.Lists.ListItems(c.Request().Context(), uid, id)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    out := make([]itemResp, 0, len(items))
    for _, it := range items {
        out = append(out, toItemResp(it))
    }
    return c.JSON(http.StatusOK, out)
}

// AddItem handles POST /listas/:id/items.
func (h *ListHandler) AddItem(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    id, err := pathID(c, "id")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    body, err := bindMap(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    it, err := h.Lists.AddItem(c.Request().Context(), uid, id, body)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, toItemResp(it))
}

// UpdateItem handles PATCH /listas/:id/items/:itemId.  Only the fields in
// the body are changed.
func (h *ListHandler) UpdateItem(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    listID, err := pathID(c, "id")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    itemID, err := pathID(c, "itemId")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    body, err := bindMap(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    it, err := h.Lists.UpdateItem(c.Request().Context(), uid, listID, itemID, body)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, toItemResp(it))
}

// SetItemStatus handles PUT /items/:itemId/status with {completed: bool}.
func (h *ListHandler) SetItemStatus(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return writeError(c, h.Log, service.ErrUnauthorized)
    }
    itemID, err := pathID(c, "itemId")
    if err != nil {
        return writeError(c, h.Log, err)
    }
    body, err := bindMap(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    it, err := h.Lists.SetItemCompleted(c.Request().Context(), uid, itemID, body["completed"])
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, toItemResp(it))
}
