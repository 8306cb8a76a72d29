// Package memory is the reference Store backend: per-entity maps guarded by
// one RWMutex, ids handed out by per-entity counters starting at 1 and never
// reused. State lives exactly as long as the process.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

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
	mu sync.RWMutex

	users      map[int]models.User
	categories map[int]models.Category
	workshops  map[int]models.Workshop
	bookmarks  map[int]models.Bookmark
	products   map[int]models.Product

	nextUserID     int
	nextCategoryID int
	nextWorkshopID int
	nextBookmarkID int
	nextProductID  int
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	s := &Store{
		users:          make(map[int]models.User),
		categories:     make(map[int]models.Category),
		workshops:      make(map[int]models.Workshop),
		bookmarks:      make(map[int]models.Bookmark),
		products:       make(map[int]models.Product),
		nextUserID:     1,
		nextCategoryID: 1,
		nextWorkshopID: 1,
		nextBookmarkID: 1,
		nextProductID:  1,
	}
	for _, name := range seedCategories {
		s.categories[s.nextCategoryID] = models.Category{ID: s.nextCategoryID, Name: name}
		s.nextCategoryID++
	}
	return s
}

// values returns map entries ordered by id, which is insertion order here.
// Callers of the Store must not rely on that ordering.
func values[T any](m map[int]T) []T {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users

func (s *Store) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, ins *schema.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{
		ID:       s.nextUserID,
		Username: ins.Username,
		Password: ins.Password,
	}
	s.users[u.ID] = u
	s.nextUserID++
	return &u, nil
}

// Categories

func (s *Store) GetCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.categories), nil
}

func (s *Store) GetCategoryByID(_ context.Context, id int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &cat, nil
}

func (s *Store) CreateCategory(_ context.Context, ins *schema.InsertCategory) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := models.Category{ID: s.nextCategoryID, Name: ins.Name}
	s.categories[cat.ID] = cat
	s.nextCategoryID++
	return &cat, nil
}

// Workshops

func (s *Store) GetWorkshops(_ context.Context) ([]models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.workshops), nil
}

func (s *Store) GetWorkshopByID(_ context.Context, id int) (*models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (s *Store) CreateWorkshop(_ context.Context, ins *schema.InsertWorkshop) (*models.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := models.Workshop{
		ID:             s.nextWorkshopID,
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
		WhatYouLearn:   slices.Clone(ins.WhatYouLearn),
	}
	s.workshops[w.ID] = w
	s.nextWorkshopID++
	return &w, nil
}

// UpdateWorkshopAvailability overwrites available_spots as given. The bound
// against total_spots is the caller's problem.
func (s *Store) UpdateWorkshopAvailability(_ context.Context, id, availableSpots int) (*models.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	w.AvailableSpots = availableSpots
	s.workshops[id] = w
	return &w, nil
}

func (s *Store) GetWorkshopsByCategory(_ context.Context, categoryID int) ([]models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Workshop{}
	for _, w := range values(s.workshops) {
		if w.CategoryID == categoryID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) GetWorkshopsByAvailability(_ context.Context, hasAvailability bool) ([]models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Workshop{}
	for _, w := range values(s.workshops) {
		if (hasAvailability && w.AvailableSpots > 0) || (!hasAvailability && w.AvailableSpots == 0) {
			out = append(out, w)
		}
	}
	return out, nil
}

// Bookmarks

func (s *Store) GetBookmarksByUser(_ context.Context, userID int) ([]models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Bookmark{}
	for _, b := range values(s.bookmarks) {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetBookmarkedWorkshopsByUser joins the user's bookmarks against the
// workshop map. Bookmarks pointing at ids with no workshop are skipped.
func (s *Store) GetBookmarkedWorkshopsByUser(_ context.Context, userID int) ([]models.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := map[int]bool{}
	for _, b := range s.bookmarks {
		if b.UserID == userID {
			wanted[b.WorkshopID] = true
		}
	}
	out := []models.Workshop{}
	for _, w := range values(s.workshops) {
		if wanted[w.ID] {
			out = append(out, w)
		}
	}
	return out, nil
}

// CreateBookmark does not dedupe; the route layer checks first, and two
// racing requests can still both land. Accepted.
func (s *Store) CreateBookmark(_ context.Context, ins *schema.InsertBookmark) (*models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := models.Bookmark{
		ID:         s.nextBookmarkID,
		UserID:     ins.UserID,
		WorkshopID: ins.WorkshopID,
		CreatedAt:  time.Now(),
	}
	s.bookmarks[b.ID] = b
	s.nextBookmarkID++
	return &b, nil
}

// DeleteBookmark removes the first bookmark matching the pair, lowest id
// first so repeated deletes under duplicates drain deterministically.
func (s *Store) DeleteBookmark(_ context.Context, userID, workshopID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range values(s.bookmarks) {
		if b.UserID == userID && b.WorkshopID == workshopID {
			delete(s.bookmarks, b.ID)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) IsWorkshopBookmarked(_ context.Context, userID, workshopID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookmarks {
		if b.UserID == userID && b.WorkshopID == workshopID {
			return true, nil
		}
	}
	return false, nil
}

// Products

func (s *Store) GetProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.products), nil
}

func (s *Store) GetProductByID(_ context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

// GetProductByCode returns the lowest-id match. Duplicate codes can exist;
// uniqueness is not enforced here.
func (s *Store) GetProductByCode(_ context.Context, code string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range values(s.products) {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateProduct(_ context.Context, ins *schema.InsertProduct) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Product{
		ID:               s.nextProductID,
		Name:             ins.Name,
		Code:             ins.Code,
		ShortDescription: ins.ShortDescription,
		LongDescription:  ins.LongDescription,
		ImageURL:         ins.ImageURL,
		Price:            ins.Price,
		CreatedAt:        time.Now(),
	}
	s.products[p.ID] = p
	s.nextProductID++
	return &p, nil
}

func (s *Store) UpdateProduct(_ context.Context, id int, patch *schema.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
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
	s.products[id] = p
	return &p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
