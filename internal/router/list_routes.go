package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopping-lists/internal/handler"
	"github.com/iliyamo/shopping-lists/internal/middleware"
)

// RegisterLists registers the list and item endpoints.  Every route requires
// a session; ownership is checked per resource by the handlers' service.
func RegisterLists(e *echo.Echo, l *handler.ListHandler, authn middleware.Authenticator) {
	requireSession := middleware.RequireSession(authn)

	lists := e.Group("/listas", requireSession)
	lists.GET("", l.GetLists)
	lists.POST("", l.CreateList)
	lists.PUT("/:id", l.UpdateList)
	lists.DELETE("/:id", l.DeleteList)
	lists.GET("/:id/items", l.GetItems)
	lists.POST("/:id/items", l.AddItem)
	lists.PATCH("/:id/items/:itemId", l.UpdateItem)

	items := e.Group("/items", requireSession)
	items.PUT("/:itemId/status", l.SetItemStatus)
}
