package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/craftlocal/workshop_hub/internal/schema"
	"github.com/craftlocal/workshop_hub/internal/storage"
)

func intp(v int) *int { return &v }

func insertWorkshop(title string, categoryID, available int) *schema.InsertWorkshop {
	return &schema.InsertWorkshop{
		Title:          title,
		Description:    "desc",
		CategoryID:     categoryID,
		ImageURL:       "http://example.com/img",
		Location:       "SF",
		Distance:       "1mi",
		Date:           "2024-05-01",
		Time:           "10:00",
		TotalSpots:     10,
		AvailableSpots: available,
	}
}

func TestSeededCategories(t *testing.T) {
	ctx := context.Background()
	s := New()

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	require.Equal(t, 1, cats[0].ID)
	require.Equal(t, "Professional Development", cats[0].Name)
	require.Equal(t, "Culinary", cats[4].Name)

	cat, err := s.GetCategoryByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, "Technology", cat.Name)

	_, err = s.GetCategoryByID(ctx, 99)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateWorkshopAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.CreateWorkshop(ctx, insertWorkshop("Pottery", 2, 10))
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)
	require.Nil(t, first.Price)
	require.Nil(t, first.Instructor)
	require.Nil(t, first.WhatYouLearn)

	second, err := s.CreateWorkshop(ctx, insertWorkshop("Welding", 2, 0))
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	got, err := s.GetWorkshopByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, *first, *got)

	_, err = s.GetWorkshopByID(ctx, 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateWorkshopAvailability(t *testing.T) {
	ctx := context.Background()
	s := New()

	w, err := s.CreateWorkshop(ctx, insertWorkshop("Pottery", 1, 10))
	require.NoError(t, err)

	updated, err := s.UpdateWorkshopAvailability(ctx, w.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 0, updated.AvailableSpots)
	require.Equal(t, 10, updated.TotalSpots)

	// no bound check against total_spots
	over, err := s.UpdateWorkshopAvailability(ctx, w.ID, 99)
	require.NoError(t, err)
	require.Equal(t, 99, over.AvailableSpots)

	_, err = s.UpdateWorkshopAvailability(ctx, 42, 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAvailabilityPartitionsWorkshops(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, spots := range []int{10, 0, 3, 0, 1} {
		_, err := s.CreateWorkshop(ctx, insertWorkshop("W", i%2+1, spots))
		require.NoError(t, err)
	}

	all, err := s.GetWorkshops(ctx)
	require.NoError(t, err)
	open, err := s.GetWorkshopsByAvailability(ctx, true)
	require.NoError(t, err)
	full, err := s.GetWorkshopsByAvailability(ctx, false)
	require.NoError(t, err)

	require.Len(t, all, 5)
	require.Len(t, open, 3)
	require.Len(t, full, 2)

	seen := map[int]bool{}
	for _, w := range append(open, full...) {
		require.False(t, seen[w.ID], "workshop %d in both partitions", w.ID)
		seen[w.ID] = true
	}
	require.Len(t, seen, len(all))
}

func TestGetWorkshopsByCategory(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateWorkshop(ctx, insertWorkshop("A", 1, 5))
	require.NoError(t, err)
	_, err = s.CreateWorkshop(ctx, insertWorkshop("B", 2, 5))
	require.NoError(t, err)
	_, err = s.CreateWorkshop(ctx, insertWorkshop("C", 1, 5))
	require.NoError(t, err)

	ws, err := s.GetWorkshopsByCategory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	for _, w := range ws {
		require.Equal(t, 1, w.CategoryID)
	}

	none, err := s.GetWorkshopsByCategory(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestBookmarkRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateBookmark(ctx, &schema.InsertBookmark{UserID: 1, WorkshopID: 5})
	require.NoError(t, err)

	bookmarked, err := s.IsWorkshopBookmarked(ctx, 1, 5)
	require.NoError(t, err)
	require.True(t, bookmarked)

	require.NoError(t, s.DeleteBookmark(ctx, 1, 5))

	bookmarked, err = s.IsWorkshopBookmarked(ctx, 1, 5)
	require.NoError(t, err)
	require.False(t, bookmarked)

	// second delete is a miss, not an error blowup
	require.ErrorIs(t, s.DeleteBookmark(ctx, 1, 5), storage.ErrNotFound)
}

func TestBookmarkedWorkshopsSkipDanglingIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	w, err := s.CreateWorkshop(ctx, insertWorkshop("Real", 1, 5))
	require.NoError(t, err)

	_, err = s.CreateBookmark(ctx, &schema.InsertBookmark{UserID: 7, WorkshopID: w.ID})
	require.NoError(t, err)
	_, err = s.CreateBookmark(ctx, &schema.InsertBookmark{UserID: 7, WorkshopID: 999})
	require.NoError(t, err)

	ws, err := s.GetBookmarkedWorkshopsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, ws, 1)
	require.Equal(t, w.ID, ws[0].ID)

	bs, err := s.GetBookmarksByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, bs, 2)
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.CreateProduct(ctx, &schema.InsertProduct{
		Name:             "Camera",
		Code:             "CAM-001",
		ShortDescription: "short",
		LongDescription:  "long",
		ImageURL:         "http://example.com/cam",
		Price:            intp(129900),
	})
	require.NoError(t, err)
	require.Equal(t, 1, p.ID)
	require.False(t, p.CreatedAt.IsZero())

	byCode, err := s.GetProductByCode(ctx, "CAM-001")
	require.NoError(t, err)
	require.Equal(t, p.ID, byCode.ID)

	// duplicate codes are allowed; lookup returns the earliest record
	dup, err := s.CreateProduct(ctx, &schema.InsertProduct{
		Name: "Camera v2", Code: "CAM-001",
		ShortDescription: "s", LongDescription: "l", ImageURL: "u",
	})
	require.NoError(t, err)
	require.Equal(t, 2, dup.ID)
	byCode, err = s.GetProductByCode(ctx, "CAM-001")
	require.NoError(t, err)
	require.Equal(t, 1, byCode.ID)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, err = s.GetProductByID(ctx, p.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.ErrorIs(t, s.DeleteProduct(ctx, p.ID), storage.ErrNotFound)

	// ids are never reused after deletion
	again, err := s.CreateProduct(ctx, &schema.InsertProduct{
		Name: "Tracker", Code: "WEAR-003",
		ShortDescription: "s", LongDescription: "l", ImageURL: "u",
	})
	require.NoError(t, err)
	require.Equal(t, 3, again.ID)
}

func TestUpdateProductMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.CreateProduct(ctx, &schema.InsertProduct{
		Name:             "Headphones",
		Code:             "AUDIO-002",
		ShortDescription: "short",
		LongDescription:  "long",
		ImageURL:         "http://example.com/hp",
		Price:            intp(24900),
	})
	require.NoError(t, err)

	name := "Headphones Pro"
	updated, err := s.UpdateProduct(ctx, p.ID, &schema.ProductPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Headphones Pro", updated.Name)
	require.Equal(t, "AUDIO-002", updated.Code)
	require.Equal(t, intp(24900), updated.Price)
	require.Equal(t, p.CreatedAt, updated.CreatedAt)

	// explicit null clears price, absent price keeps it
	updated, err = s.UpdateProduct(ctx, p.ID, &schema.ProductPatch{HasPrice: true})
	require.NoError(t, err)
	require.Nil(t, updated.Price)

	_, err = s.UpdateProduct(ctx, 42, &schema.ProductPatch{Name: &name})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserOps(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, &schema.InsertUser{Username: "demo", Password: "hashed"})
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)

	byName, err := s.GetUserByUsername(ctx, "demo")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	byID, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "demo", byID.Username)

	_, err = s.GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
