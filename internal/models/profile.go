package models

import "time"

// Profile holds the editable extras shown on the profile page. One row
// per user, created together with the account.
type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DOB              *time.Time `json:"dob"`
	PhoneNumber      string     `gorm:"size:40" json:"phone_number"`
	PreferredStylist string     `gorm:"size:120" json:"preferred_stylist"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
