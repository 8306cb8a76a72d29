// Package gormstore is the durable Store backend, behind the same interface
// as the in-memory one. It deliberately mirrors the reference semantics,
// including the things the reference does NOT enforce (product code
// uniqueness, availability bounds, bookmark dedup).
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftlocal/workshop_hub/internal/models"
	"github.com/craftlocal/workshop_hub/internal/schema"
	"github.com/craftlocal/workshop_hub/internal/storage"
)

var seedCategories = []string{
	"Professional Development",
	"Creative Arts",
	"Technology",
	"Wellness & Fitness",
	"Culinary",
}

type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newStore(db)
}

func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Workshop{},
		&models.Bookmark{},
		&models.Product{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := &Store{db: db}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// seed inserts the fixed category set on first start only.
func (s *Store) seed() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range seedCategories {
		if err := s.db.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}

// DB exposes the underlying handle for process shutdown.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// Users

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, ins *schema.InsertUser) (*models.User, error) {
	u := models.User{Username: ins.Username, Password: ins.Password}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Categories

func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

func (s *Store) CreateCategory(ctx context.Context, ins *schema.InsertCategory) (*models.Category, error) {
	cat := models.Category{Name: ins.Name}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Workshops

func (s *Store) GetWorkshops(ctx context.Context) ([]models.Workshop, error) {
	ws := []models.Workshop{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Store) GetWorkshopByID(ctx context.Context, id int) (*models.Workshop, error) {
	var w models.Workshop
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

func (s *Store) CreateWorkshop(ctx context.Context, ins *schema.InsertWorkshop) (*models.Workshop, error) {
	w := models.Workshop{
		Title:          ins.Title,
		Description:    ins.Description,
		CategoryID:     ins.CategoryID,
		ImageURL:       ins.ImageURL,
		Price:          ins.Price,
		Location:       ins.Location,
		Distance:       ins.Distance,
		Date:           ins.Date,
		Time:           ins.Time,
		Instructor:     ins.Instructor,
		TotalSpots:     ins.TotalSpots,
		AvailableSpots: ins.AvailableSpots,
		Requirements:   ins.Requirements,
		WhatYouLearn:   ins.WhatYouLearn,
	}
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) UpdateWorkshopAvailability(ctx context.Context, id, availableSpots int) (*models.Workshop, error) {
	var w models.Workshop
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, notFound(err)
	}
	w.AvailableSpots = availableSpots
	if err := s.db.WithContext(ctx).Save(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) GetWorkshopsByCategory(ctx context.Context, categoryID int) ([]models.Workshop, error) {
	ws := []models.Workshop{}
	if err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Store) GetWorkshopsByAvailability(ctx context.Context, hasAvailability bool) ([]models.Workshop, error) {
	q := s.db.WithContext(ctx)
	if hasAvailability {
		q = q.Where("available_spots > 0")
	} else {
		q = q.Where("available_spots = 0")
	}
	ws := []models.Workshop{}
	if err := q.Order("id ASC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

// Bookmarks

func (s *Store) GetBookmarksByUser(ctx context.Context, userID int) ([]models.Bookmark, error) {
	bs := []models.Bookmark{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&bs).Error; err != nil {
		return nil, err
	}
	return bs, nil
}

// GetBookmarkedWorkshopsByUser resolves the user's bookmarks against the
// workshops table; dangling workshop ids drop out of the IN clause result.
func (s *Store) GetBookmarkedWorkshopsByUser(ctx context.Context, userID int) ([]models.Workshop, error) {
	sub := s.db.Model(&models.Bookmark{}).Select("workshop_id").Where("user_id = ?", userID)
	ws := []models.Workshop{}
	if err := s.db.WithContext(ctx).Where("id IN (?)", sub).Order("id ASC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Store) CreateBookmark(ctx context.Context, ins *schema.InsertBookmark) (*models.Bookmark, error) {
	b := models.Bookmark{UserID: ins.UserID, WorkshopID: ins.WorkshopID}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) DeleteBookmark(ctx context.Context, userID, workshopID int) error {
	var b models.Bookmark
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND workshop_id = ?", userID, workshopID).
		Order("id ASC").
		First(&b).Error
	if err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Delete(&models.Bookmark{}, b.ID).Error
}

func (s *Store) IsWorkshopBookmarked(ctx context.Context, userID, workshopID int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND workshop_id = ?", userID, workshopID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Products

func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	ps := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Store) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Where("code = ?", code).Order("id ASC").First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, ins *schema.InsertProduct) (*models.Product, error) {
	p := models.Product{
		Name:             ins.Name,
		Code:             ins.Code,
		ShortDescription: ins.ShortDescription,
		LongDescription:  ins.LongDescription,
		ImageURL:         ins.ImageURL,
		Price:            ins.Price,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int, patch *schema.ProductPatch) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.ShortDescription != nil {
		p.ShortDescription = *patch.ShortDescription
	}
	if patch.LongDescription != nil {
		p.LongDescription = *patch.LongDescription
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.HasPrice {
		p.Price = patch.Price
	}
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
