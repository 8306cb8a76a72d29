package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftlocal/workshop_hub/internal/events"
	"github.com/craftlocal/workshop_hub/internal/handlers"
	"github.com/craftlocal/workshop_hub/internal/storage"
)

type Deps struct {
	Store    storage.Store
	Producer *events.Producer

	CategoryHandler *handlers.CategoryHandler
	WorkshopHandler *handlers.WorkshopHandler
	BookmarkHandler *handlers.BookmarkHandler
	ProductHandler  *handlers.ProductHandler
}

// NewDeps builds the default handler set over one store.
func NewDeps(store storage.Store, producer *events.Producer) *Deps {
	return &Deps{
		Store:           store,
		Producer:        producer,
		CategoryHandler: &handlers.CategoryHandler{Store: store},
		WorkshopHandler: &handlers.WorkshopHandler{Store: store, Producer: producer},
		BookmarkHandler: &handlers.BookmarkHandler{Store: store, Producer: producer},
		ProductHandler:  &handlers.ProductHandler{Store: store, Producer: producer},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.GET("/categories", d.CategoryHandler.GetCategories)

	workshops := api.Group("/workshops")
	workshops.GET("", d.WorkshopHandler.GetWorkshops)
	workshops.GET("/:id", d.WorkshopHandler.GetWorkshop)
	workshops.GET("/category/:categoryId", d.WorkshopHandler.GetWorkshopsByCategory)
	workshops.GET("/available/:available", d.WorkshopHandler.GetWorkshopsByAvailability)
	workshops.POST("", d.WorkshopHandler.CreateWorkshop)
	workshops.PATCH("/:id/availability", d.WorkshopHandler.UpdateAvailability)

	bookmarks := api.Group("/bookmarks")
	bookmarks.POST("", d.BookmarkHandler.CreateBookmark)
	bookmarks.DELETE("/:userId/:workshopId", d.BookmarkHandler.DeleteBookmark)
	bookmarks.GET("/:userId/:workshopId", d.BookmarkHandler.IsWorkshopBookmarked)
	bookmarks.GET("/user/:userId", d.BookmarkHandler.GetBookmarkedWorkshops)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/code/:code", d.ProductHandler.GetProductByCode)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PATCH("/:id", d.ProductHandler.PatchProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
