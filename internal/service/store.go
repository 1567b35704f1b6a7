package service

import (
	"context"

	"tour-manager/internal/models"
)

// ClientStore persists clients. database.DB implements it.
type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	SetClientBlacklist(ctx context.Context, id int64, blacklisted bool) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// GuideStore persists guides. database.DB implements it.
type GuideStore interface {
	CreateGuide(ctx context.Context, g *models.Guide) (*models.Guide, error)
	GetGuide(ctx context.Context, id int64) (*models.Guide, error)
	ListGuides(ctx context.Context, filter models.GuideFilter) ([]models.Guide, error)
	UpdateGuide(ctx context.Context, g *models.Guide) (*models.Guide, error)
	DeleteGuide(ctx context.Context, id int64) error
}

// TourStore persists tours. database.DB implements it.
type TourStore interface {
	CreateTour(ctx context.Context, t *models.Tour) (*models.Tour, error)
	GetTour(ctx context.Context, id int64) (*models.Tour, error)
	ListTours(ctx context.Context, filter models.TourFilter) ([]models.Tour, error)
	UpdateTourDetails(ctx context.Context, t *models.Tour) (*models.Tour, error)
	AssignTourGuide(ctx context.Context, id, guideID int64) (*models.Tour, error)
	DeleteTour(ctx context.Context, id int64) error
}

// Store is the full record store.
type Store interface {
	ClientStore
	GuideStore
	TourStore
}

// Notifier delivers a chat message to a guide handle. Ordinary delivery
// failures are reported through the return value, never panics or errors.
type Notifier interface {
	Send(ctx context.Context, handle, text string) bool
}
