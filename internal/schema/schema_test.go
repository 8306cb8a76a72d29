package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	raw := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func fields(err error) []string {
	verr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestParseInsertWorkshopValid(t *testing.T) {
	raw := decode(t, `{
		"title": "Pottery",
		"description": "Throwing basics",
		"category_id": 2,
		"image_url": "http://x",
		"price": 45,
		"location": "SF",
		"distance": "1mi",
		"date": "2024-05-01",
		"time": "10:00",
		"total_spots": 10,
		"available_spots": 10,
		"what_you_learn": ["centering", "trimming"],
		"bogus_field": "dropped"
	}`)

	ins, err := ParseInsertWorkshop(raw)
	require.NoError(t, err)
	require.Equal(t, "Pottery", ins.Title)
	require.Equal(t, 2, ins.CategoryID)
	require.NotNil(t, ins.Price)
	require.Equal(t, 45, *ins.Price)
	require.Nil(t, ins.Instructor)
	require.Nil(t, ins.Requirements)
	require.Equal(t, []string{"centering", "trimming"}, ins.WhatYouLearn)
}

func TestParseInsertWorkshopMissingFields(t *testing.T) {
	raw := decode(t, `{"title": "Pottery"}`)

	_, err := ParseInsertWorkshop(raw)
	require.Error(t, err)
	got := fields(err)
	require.Contains(t, got, "description")
	require.Contains(t, got, "category_id")
	require.Contains(t, got, "image_url")
	require.Contains(t, got, "location")
	require.Contains(t, got, "distance")
	require.Contains(t, got, "date")
	require.Contains(t, got, "time")
	require.Contains(t, got, "total_spots")
	require.Contains(t, got, "available_spots")
	require.NotContains(t, got, "title")
	require.NotContains(t, got, "price")
}

func TestParseInsertWorkshopNonIntegerNumbers(t *testing.T) {
	raw := decode(t, `{
		"title": "Pottery", "description": "d", "category_id": 1.5,
		"image_url": "u", "location": "l", "distance": "1mi",
		"date": "2024-05-01", "time": "10:00",
		"total_spots": 10, "available_spots": 10, "price": 9.99
	}`)

	_, err := ParseInsertWorkshop(raw)
	require.Error(t, err)
	got := fields(err)
	require.Contains(t, got, "category_id")
	require.Contains(t, got, "price")
}

func TestParseInsertWorkshopLenientWhatYouLearn(t *testing.T) {
	const base = `{
		"title": "t", "description": "d", "category_id": 1, "image_url": "u",
		"location": "l", "distance": "1mi", "date": "2024-05-01", "time": "10:00",
		"total_spots": 5, "available_spots": 5, "what_you_learn": `

	cases := []struct {
		name string
		json string
		want []string
	}{
		{"object coerced to absent", `{"a": 1}`, nil},
		{"string coerced to absent", `"not a list"`, nil},
		{"number coerced to absent", `7`, nil},
		{"mixed list coerced to absent", `["ok", 3]`, nil},
		{"empty list kept", `[]`, []string{}},
		{"string list kept", `["a", "b"]`, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ins, err := ParseInsertWorkshop(decode(t, base+tc.json+`}`))
			require.NoError(t, err)
			require.Equal(t, tc.want, ins.WhatYouLearn)
		})
	}
}

func TestParseInsertBookmark(t *testing.T) {
	ins, err := ParseInsertBookmark(decode(t, `{"user_id": 1, "workshop_id": 5}`))
	require.NoError(t, err)
	require.Equal(t, 1, ins.UserID)
	require.Equal(t, 5, ins.WorkshopID)

	_, err = ParseInsertBookmark(decode(t, `{"user_id": "1"}`))
	require.Error(t, err)
	got := fields(err)
	require.Contains(t, got, "user_id")
	require.Contains(t, got, "workshop_id")
}

func TestParseInsertProduct(t *testing.T) {
	ins, err := ParseInsertProduct(decode(t, `{
		"name": "Camera", "code": "CAM-001",
		"short_description": "s", "long_description": "l",
		"image_url": "u"
	}`))
	require.NoError(t, err)
	require.Nil(t, ins.Price)

	_, err = ParseInsertProduct(decode(t, `{"name": 3}`))
	require.Error(t, err)
	require.Contains(t, fields(err), "name")
	require.Contains(t, fields(err), "code")
}

func TestParseProductPatchPricePresence(t *testing.T) {
	patch, err := ParseProductPatch(decode(t, `{"name": "New name"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Name)
	require.False(t, patch.HasPrice)

	patch, err = ParseProductPatch(decode(t, `{"price": null}`))
	require.NoError(t, err)
	require.True(t, patch.HasPrice)
	require.Nil(t, patch.Price)

	patch, err = ParseProductPatch(decode(t, `{"price": 500}`))
	require.NoError(t, err)
	require.True(t, patch.HasPrice)
	require.Equal(t, 500, *patch.Price)

	_, err = ParseProductPatch(decode(t, `{"price": 9.5}`))
	require.Error(t, err)
}

func TestParseAvailabilityUpdate(t *testing.T) {
	upd, err := ParseAvailabilityUpdate(decode(t, `{"available_spots": 0}`))
	require.NoError(t, err)
	require.Equal(t, 0, upd.AvailableSpots)

	_, err = ParseAvailabilityUpdate(decode(t, `{"available_spots": "many"}`))
	require.Error(t, err)

	_, err = ParseAvailabilityUpdate(decode(t, `{}`))
	require.Error(t, err)
}
