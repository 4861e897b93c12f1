package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Null for guest bookings.
	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	StyleID uint  `gorm:"not null" json:"style_id"`
	Style   Style `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"style"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	// Contact snapshot captured at booking time. Profile edits afterwards
	// must not rewrite history. ContactEmail is a pointer so a missing
	// address is stored as NULL and stays outside the guest uniqueness
	// index.
	ContactName  string  `gorm:"size:120" json:"contact_name"`
	ContactEmail *string `gorm:"size:100" json:"contact_email"`
	ContactPhone string  `gorm:"size:40" json:"contact_phone"`

	// Set once by the payment webhook.
	Amount *float64 `json:"amount"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
