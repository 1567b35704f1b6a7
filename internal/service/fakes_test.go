package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"tour-manager/internal/database"
	"tour-manager/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memStore is an in-memory Store with failure injection.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]models.Client
	guides  map[int64]models.Guide
	tours   map[int64]models.Tour
	writes  int

	failCreateTour error
	failUpdateTour error
	failListGuides error
	failGetGuide   error

	// afterGetTour runs, without the lock held, after every GetTour read.
	afterGetTour func(id int64)
}

func newMemStore() *memStore {
	return &memStore{
		clients: map[int64]models.Client{},
		guides:  map[int64]models.Guide{},
		tours:   map[int64]models.Tour{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("failed to get %s %d: %w", kind, id, database.ErrNotFound)
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *memStore) CreateClient(_ context.Context, c *models.Client) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	c.ID = s.id()
	s.clients[c.ID] = *c
	out := *c
	return &out, nil
}

func (s *memStore) GetClient(_ context.Context, id int64) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, notFound("client", id)
	}
	return &c, nil
}

func (s *memStore) ListClients(_ context.Context) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Client{}
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) SetClientBlacklist(_ context.Context, id int64, blacklisted bool) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, notFound("client", id)
	}
	s.writes++
	c.BlackList = blacklisted
	s.clients[id] = c
	return &c, nil
}

func (s *memStore) DeleteClient(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return notFound("client", id)
	}
	for _, t := range s.tours {
		if t.ClientID == id {
			return fmt.Errorf("failed to delete client %d: %w", id, database.ErrConflict)
		}
	}
	s.writes++
	delete(s.clients, id)
	return nil
}

func (s *memStore) CreateGuide(_ context.Context, g *models.Guide) (*models.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.guides {
		if existing.Email == g.Email {
			return nil, fmt.Errorf("failed to create guide: %w", database.ErrConflict)
		}
	}
	s.writes++
	g.ID = s.id()
	s.guides[g.ID] = *g
	out := *g
	return &out, nil
}

func (s *memStore) GetGuide(_ context.Context, id int64) (*models.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGetGuide != nil {
		return nil, s.failGetGuide
	}
	g, ok := s.guides[id]
	if !ok {
		return nil, notFound("guide", id)
	}
	return &g, nil
}

func (s *memStore) ListGuides(_ context.Context, filter models.GuideFilter) ([]models.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failListGuides != nil {
		return nil, s.failListGuides
	}
	out := []models.Guide{}
	for _, g := range s.guides {
		if filter.ActiveOnly && !g.IsActive {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) UpdateGuide(_ context.Context, g *models.Guide) (*models.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.guides[g.ID]
	if !ok {
		return nil, notFound("guide", g.ID)
	}
	s.writes++
	updated := *g
	updated.TotalTours = existing.TotalTours
	updated.TotalEarnings = existing.TotalEarnings
	s.guides[g.ID] = updated
	return &updated, nil
}

func (s *memStore) DeleteGuide(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.guides[id]; !ok {
		return notFound("guide", id)
	}
	s.writes++
	delete(s.guides, id)
	return nil
}

func (s *memStore) CreateTour(_ context.Context, t *models.Tour) (*models.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateTour != nil {
		return nil, s.failCreateTour
	}
	s.writes++
	t.ID = s.id()
	s.tours[t.ID] = *t
	out := *t
	return &out, nil
}

func (s *memStore) GetTour(_ context.Context, id int64) (*models.Tour, error) {
	s.mu.Lock()
	t, ok := s.tours[id]
	hook := s.afterGetTour
	s.mu.Unlock()
	if !ok {
		return nil, notFound("tour", id)
	}
	if hook != nil {
		hook(id)
	}
	return &t, nil
}

func (s *memStore) ListTours(_ context.Context, filter models.TourFilter) ([]models.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Tour{}
	for _, t := range s.tours {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.ClientID != 0 && t.ClientID != filter.ClientID {
			continue
		}
		if filter.GuideID != 0 && (t.AssignedGuideID == nil || *t.AssignedGuideID != filter.GuideID) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *memStore) UpdateTourDetails(_ context.Context, t *models.Tour) (*models.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdateTour != nil {
		return nil, s.failUpdateTour
	}
	existing, ok := s.tours[t.ID]
	if !ok {
		return nil, notFound("tour", t.ID)
	}
	s.writes++
	updated := *t
	updated.Status = existing.Status
	updated.AssignedGuideID = existing.AssignedGuideID
	updated.CreatedAt = existing.CreatedAt
	s.tours[t.ID] = updated
	return &updated, nil
}

func (s *memStore) AssignTourGuide(_ context.Context, id, guideID int64) (*models.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdateTour != nil {
		return nil, s.failUpdateTour
	}
	t, ok := s.tours[id]
	if !ok {
		return nil, notFound("tour", id)
	}
	s.writes++
	t.Status = models.TourStatusConfirmed
	t.AssignedGuideID = &guideID
	s.tours[id] = t
	return &t, nil
}

func (s *memStore) DeleteTour(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tours[id]; !ok {
		return notFound("tour", id)
	}
	s.writes++
	delete(s.tours, id)
	return nil
}

type sentMessage struct {
	Handle string
	Text   string
}

// fakeNotifier records every Send and fails for handles in fail.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	fail    map[string]bool
	failAll bool
	onSend  func(handle string)
	// cancelled counts sends whose context was already done.
	cancelled int
}

func (n *fakeNotifier) Send(ctx context.Context, handle, text string) bool {
	if n.onSend != nil {
		n.onSend(handle)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if ctx.Err() != nil {
		n.cancelled++
	}
	n.sent = append(n.sent, sentMessage{Handle: handle, Text: text})
	return !n.failAll && !n.fail[handle]
}

func (n *fakeNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

func (n *fakeNotifier) handles() []string {
	var hs []string
	for _, m := range n.messages() {
		hs = append(hs, m.Handle)
	}
	sort.Strings(hs)
	return hs
}

func strPtr(s string) *string {
	return &s
}
