package schema

import (
	"fmt"
	"math"
	"strings"
)

// FieldError points at one offending field in a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure found in one body.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type InsertCategory struct {
	Name string `json:"name"`
}

type InsertWorkshop struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	CategoryID     int      `json:"category_id"`
	ImageURL       string   `json:"image_url"`
	Price          *int     `json:"price"`
	Location       string   `json:"location"`
	Distance       string   `json:"distance"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Instructor     *string  `json:"instructor"`
	TotalSpots     int      `json:"total_spots"`
	AvailableSpots int      `json:"available_spots"`
	Requirements   *string  `json:"requirements"`
	WhatYouLearn   []string `json:"what_you_learn"`
}

type InsertBookmark struct {
	UserID     int `json:"user_id"`
	WorkshopID int `json:"workshop_id"`
}

type InsertProduct struct {
	Name             string `json:"name"`
	Code             string `json:"code"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	ImageURL         string `json:"image_url"`
	Price            *int   `json:"price"`
}

// ProductPatch carries only the fields present in a PATCH body. HasPrice
// distinguishes "price absent" from "price explicitly set to null".
type ProductPatch struct {
	Name             *string
	Code             *string
	ShortDescription *string
	LongDescription  *string
	ImageURL         *string
	Price            *int
	HasPrice         bool
}

type AvailabilityUpdate struct {
	AvailableSpots int `json:"available_spots"`
}

// collector accumulates field errors while pulling typed values out of a
// decoded JSON object. Unknown keys are simply never read, which strips them.
type collector struct {
	raw  map[string]any
	errs []FieldError
}

func (v *collector) fail(field, msg string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: msg})
}

func (v *collector) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}

func (v *collector) reqString(field string) string {
	val, ok := v.raw[field]
	if !ok || val == nil {
		v.fail(field, "is required")
		return ""
	}
	s, ok := val.(string)
	if !ok {
		v.fail(field, "must be a string")
		return ""
	}
	return s
}

func (v *collector) optString(field string) *string {
	val, ok := v.raw[field]
	if !ok || val == nil {
		return nil
	}
	s, ok := val.(string)
	if !ok {
		v.fail(field, "must be a string")
		return nil
	}
	return &s
}

func asInt(val any) (int, bool) {
	f, ok := val.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (v *collector) reqInt(field string) int {
	val, ok := v.raw[field]
	if !ok || val == nil {
		v.fail(field, "is required")
		return 0
	}
	n, ok := asInt(val)
	if !ok {
		v.fail(field, "must be an integer")
		return 0
	}
	return n
}

func (v *collector) optInt(field string) *int {
	val, ok := v.raw[field]
	if !ok || val == nil {
		return nil
	}
	n, ok := asInt(val)
	if !ok {
		v.fail(field, "must be an integer")
		return nil
	}
	return &n
}

// lenientStringList coerces anything that is not a list of strings to absent
// rather than rejecting it.
func (v *collector) lenientStringList(field string) []string {
	val, ok := v.raw[field]
	if !ok || val == nil {
		return nil
	}
	items, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func ParseInsertUser(raw map[string]any) (*InsertUser, error) {
	v := &collector{raw: raw}
	ins := &InsertUser{
		Username: v.reqString("username"),
		Password: v.reqString("password"),
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return ins, nil
}

func ParseInsertCategory(raw map[string]any) (*InsertCategory, error) {
	v := &collector{raw: raw}
	ins := &InsertCategory{Name: v.reqString("name")}
	if err := v.err(); err != nil {
		return nil, err
	}
	return ins, nil
}

func ParseInsertWorkshop(raw map[string]any) (*InsertWorkshop, error) {
	v := &collector{raw: raw}
	ins := &InsertWorkshop{
		Title:          v.reqString("title"),
		Description:    v.reqString("description"),
		CategoryID:     v.reqInt("category_id"),
		ImageURL:       v.reqString("image_url"),
		Price:          v.optInt("price"),
		Location:       v.reqString("location"),
		Distance:       v.reqString("distance"),
		Date:           v.reqString("date"),
		Time:           v.reqString("time"),
		Instructor:     v.optString("instructor"),
		TotalSpots:     v.reqInt("total_spots"),
		AvailableSpots: v.reqInt("available_spots"),
		Requirements:   v.optString("requirements"),
		WhatYouLearn:   v.lenientStringList("what_you_learn"),
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return ins, nil
}

func ParseInsertBookmark(raw map[string]any) (*InsertBookmark, error) {
	v := &collector{raw: raw}
	ins := &InsertBookmark{
		UserID:     v.reqInt("user_id"),
		WorkshopID: v.reqInt("workshop_id"),
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return ins, nil
}

func ParseInsertProduct(raw map[string]any) (*InsertProduct, error) {
	v := &collector{raw: raw}
	ins := &InsertProduct{
		Name:             v.reqString("name"),
		Code:             v.reqString("code"),
		ShortDescription: v.reqString("short_description"),
		LongDescription:  v.reqString("long_description"),
		ImageURL:         v.reqString("image_url"),
		Price:            v.optInt("price"),
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return ins, nil
}

func ParseProductPatch(raw map[string]any) (*ProductPatch, error) {
	v := &collector{raw: raw}
	patch := &ProductPatch{
		Name:             v.optString("name"),
		Code:             v.optString("code"),
		ShortDescription: v.optString("short_description"),
		LongDescription:  v.optString("long_description"),
		ImageURL:         v.optString("image_url"),
	}
	if _, present := raw["price"]; present {
		patch.HasPrice = true
		patch.Price = v.optInt("price")
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return patch, nil
}

func ParseAvailabilityUpdate(raw map[string]any) (*AvailabilityUpdate, error) {
	v := &collector{raw: raw}
	upd := &AvailabilityUpdate{AvailableSpots: v.reqInt("available_spots")}
	if err := v.err(); err != nil {
		return nil, err
	}
	return upd, nil
}
