package models

import (
	"time"
)

type User struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Password string `gorm:"not null"                 json:"-"`
}

type Category struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Workshop struct {
	ID             int      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string   `gorm:"not null"                 json:"title"`
	Description    string   `gorm:"not null"                 json:"description"`
	CategoryID     int      `gorm:"not null;index"           json:"category_id"`
	ImageURL       string   `gorm:"not null"                 json:"image_url"`
	Price          *int     `json:"price"`
	Location       string   `gorm:"not null"                 json:"location"`
	Distance       string   `gorm:"not null"                 json:"distance"`
	Date           string   `gorm:"not null"                 json:"date"`
	Time           string   `gorm:"not null"                 json:"time"`
	Instructor     *string  `json:"instructor"`
	TotalSpots     int      `gorm:"not null"                 json:"total_spots"`
	AvailableSpots int      `gorm:"not null"                 json:"available_spots"`
	Requirements   *string  `json:"requirements"`
	WhatYouLearn   []string `gorm:"serializer:json;type:text" json:"what_you_learn"`
}

type Bookmark struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int       `gorm:"index;not null"           json:"user_id"`
	WorkshopID int       `gorm:"not null"                 json:"workshop_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"not null"                 json:"name"`
	Code             string    `gorm:"not null"                 json:"code"`
	ShortDescription string    `gorm:"not null"                 json:"short_description"`
	LongDescription  string    `gorm:"not null"                 json:"long_description"`
	ImageURL         string    `gorm:"not null"                 json:"image_url"`
	Price            *int      `json:"price"`
	CreatedAt        time.Time `json:"created_at"`
}
