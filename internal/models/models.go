package models

import (
	"strings"
	"time"
)

type TourStatus string

const (
	TourStatusPending   TourStatus = "pending"
	TourStatusConfirmed TourStatus = "confirmed"
)

func (s TourStatus) Valid() bool {
	return s == TourStatusPending || s == TourStatusConfirmed
}

type Client struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	ContactInfo *string   `db:"contact_info" json:"contact_info,omitempty"`
	TgAlias     *string   `db:"tg_alias" json:"tg_alias,omitempty"`
	BlackList   bool      `db:"black_list" json:"black_list"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Guide struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	TgAlias       *string   `db:"tg_alias" json:"tg_alias,omitempty"`
	ContactInfo   *string   `db:"contact_info" json:"contact_info,omitempty"`
	TotalTours    int       `db:"total_tours" json:"total_tours"`
	TotalEarnings float64   `db:"total_earnings" json:"total_earnings"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ChatHandle returns the trimmed Telegram handle, or "" when the guide has none.
func (g Guide) ChatHandle() string {
	if g.TgAlias == nil {
		return ""
	}
	return strings.TrimSpace(*g.TgAlias)
}

// Eligible reports whether the guide receives new-tour broadcasts.
func (g Guide) Eligible() bool {
	return g.IsActive && g.ChatHandle() != ""
}

type Tour struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Date            time.Time  `db:"date" json:"date"`
	Venue           string     `db:"venue" json:"venue"`
	GroupSize       int        `db:"group_size" json:"group_size"`
	Duration        float64    `db:"duration" json:"duration"`
	ClientID        int64      `db:"client_id" json:"client_id"`
	Price           float64    `db:"price" json:"price"`
	Status          TourStatus `db:"status" json:"status"`
	AssignedGuideID *int64     `db:"assigned_guide_id" json:"assigned_guide_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// GuideFilter narrows ListGuides. The zero value lists every guide.
type GuideFilter struct {
	ActiveOnly bool
}

// TourFilter narrows ListTours. Zero fields are ignored.
type TourFilter struct {
	Status   TourStatus
	ClientID int64
	GuideID  int64
}
