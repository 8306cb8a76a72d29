// Package storage defines the contract every persistence backend satisfies.
// The route layer only ever sees this interface; the backend is picked at
// process start.
package storage

import (
	"context"
	"errors"

	"github.com/craftlocal/workshop_hub/internal/models"
	"github.com/craftlocal/workshop_hub/internal/schema"
)

// ErrNotFound signals a lookup miss. It is the only error the reference
// in-memory backend ever returns; durable backends map their driver errors
// onto it so handlers can translate misses to 404 uniformly.
var ErrNotFound = errors.New("storage: record not found")

type Store interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, ins *schema.InsertUser) (*models.User, error)

	// Categories
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
	CreateCategory(ctx context.Context, ins *schema.InsertCategory) (*models.Category, error)

	// Workshops
	GetWorkshops(ctx context.Context) ([]models.Workshop, error)
	GetWorkshopByID(ctx context.Context, id int) (*models.Workshop, error)
	CreateWorkshop(ctx context.Context, ins *schema.InsertWorkshop) (*models.Workshop, error)
	UpdateWorkshopAvailability(ctx context.Context, id, availableSpots int) (*models.Workshop, error)
	GetWorkshopsByCategory(ctx context.Context, categoryID int) ([]models.Workshop, error)
	GetWorkshopsByAvailability(ctx context.Context, hasAvailability bool) ([]models.Workshop, error)

	// Bookmarks
	GetBookmarksByUser(ctx context.Context, userID int) ([]models.Bookmark, error)
	GetBookmarkedWorkshopsByUser(ctx context.Context, userID int) ([]models.Workshop, error)
	CreateBookmark(ctx context.Context, ins *schema.InsertBookmark) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, workshopID int) error
	IsWorkshopBookmarked(ctx context.Context, userID, workshopID int) (bool, error)

	// Products
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	GetProductByCode(ctx context.Context, code string) (*models.Product, error)
	CreateProduct(ctx context.Context, ins *schema.InsertProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, patch *schema.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}
