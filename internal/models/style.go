package models

import "time"

type Style struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:120;not null" json:"name"`
	Category string `gorm:"size:50" json:"category"`

	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	DurationMins int `json:"duration_mins"`

	ImageURL  string   `gorm:"size:500" json:"image_url"`
	RatingAvg *float64 `json:"rating_avg"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
