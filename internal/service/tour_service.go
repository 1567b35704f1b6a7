package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tour-manager/internal/database"
	"tour-manager/internal/models"
	"tour-manager/pkg/logger"
)

// TourInput holds the staff-supplied fields of a tour.
type TourInput struct {
	ClientID    int64
	Name        string
	Description *string
	Date        time.Time
	Venue       string
	GroupSize   int
	Duration    float64
	Price       float64
}

func (in TourInput) validate() error {
	var missing []string
	if in.ClientID <= 0 {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.Venue) == "" {
		missing = append(missing, "venue")
	}
	if in.GroupSize <= 0 {
		missing = append(missing, "group_size")
	}
	if len(missing) > 0 {
		return ValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func (in TourInput) apply(t *models.Tour) {
	t.ClientID = in.ClientID
	t.Name = strings.TrimSpace(in.Name)
	t.Description = in.Description
	t.Date = in.Date.UTC()
	t.Venue = strings.TrimSpace(in.Venue)
	t.GroupSize = in.GroupSize
	t.Duration = in.Duration
	t.Price = in.Price
}

// TourService runs tour creation and guide assignment, including the guide
// notifications that follow them.
type TourService struct {
	tours    TourStore
	guides   GuideStore
	clients  ClientStore
	dispatch *dispatcher
	log      *zap.Logger
	now      func() time.Time
}

func NewTourService(store Store, notifier Notifier, cfg NotifyConfig, log *zap.Logger) *TourService {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tours")
	return &TourService{
		tours:    store,
		guides:   store,
		clients:  store,
		dispatch: &dispatcher{notifier: notifier, cfg: cfg.withDefaults(), log: log},
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTour persists a pending tour and then broadcasts it to every
// eligible guide. Broadcast failures never fail the call.
func (s *TourService) CreateTour(ctx context.Context, in TourInput) (*models.Tour, *DeliveryReport, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	if err := s.requireClient(ctx, in.ClientID); err != nil {
		return nil, nil, err
	}

	tour := &models.Tour{Status: models.TourStatusPending, CreatedAt: s.now()}
	in.apply(tour)

	created, err := s.tours.CreateTour(ctx, tour)
	if err != nil {
		return nil, nil, storeError("create tour", "Client not found", err)
	}

	s.log.Info("Tour created",
		zap.Int64(logger.FieldTourID, created.ID),
		zap.Int64(logger.FieldClientID, created.ClientID),
	)

	report := s.broadcast(context.WithoutCancel(ctx), *created)
	return created, report, nil
}

func (s *TourService) broadcast(ctx context.Context, tour models.Tour) *DeliveryReport {
	guides, err := s.guides.ListGuides(ctx, models.GuideFilter{ActiveOnly: true})
	if err != nil {
		s.log.Error("Failed to load guides for broadcast",
			zap.Int64(logger.FieldTourID, tour.ID),
			zap.Error(err),
		)
		return &DeliveryReport{}
	}

	text := NewTourMessage(tour)
	var rs []recipient
	for _, g := range guides {
		if !g.Eligible() {
			continue
		}
		rs = append(rs, recipient{GuideID: g.ID, Handle: g.ChatHandle(), Text: text})
	}
	return s.dispatch.deliver(ctx, "broadcast_tour", rs)
}

// AssignGuide confirms the tour for guideID and notifies that guide. The
// guide is not required to exist or be active, and an existing assignment is
// overwritten.
func (s *TourService) AssignGuide(ctx context.Context, tourID, guideID int64) (*models.Tour, *DeliveryReport, error) {
	if guideID <= 0 {
		return nil, nil, ValidationError("Guide ID is required")
	}

	updated, err := s.tours.AssignTourGuide(ctx, tourID, guideID)
	if err != nil {
		return nil, nil, storeError("assign guide", "Tour not found", err)
	}

	log := s.log.With(zap.Int64(logger.FieldTourID, tourID), zap.Int64(logger.FieldGuideID, guideID))
	log.Info("Guide assigned")

	return updated, s.notifyAssigned(context.WithoutCancel(ctx), *updated, guideID, log), nil
}

func (s *TourService) notifyAssigned(ctx context.Context, tour models.Tour, guideID int64, log *zap.Logger) *DeliveryReport {
	guide, err := s.guides.GetGuide(ctx, guideID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		log.Debug("Assigned guide not found, skipping notification")
		return &DeliveryReport{}
	case err != nil:
		log.Warn("Failed to load assigned guide, skipping notification", zap.Error(err))
		return &DeliveryReport{}
	}

	handle := guide.ChatHandle()
	if handle == "" {
		log.Debug("Assigned guide has no chat handle, skipping notification")
		return &DeliveryReport{}
	}

	return s.dispatch.deliver(ctx, "assign_guide", []recipient{
		{GuideID: guide.ID, Handle: handle, Text: AssignmentMessage(tour, *guide)},
	})
}

func (s *TourService) requireClient(ctx context.Context, clientID int64) error {
	if _, err := s.clients.GetClient(ctx, clientID); err != nil {
		return storeError("load client", "Client not found", err)
	}
	return nil
}

func (s *TourService) GetTour(ctx context.Context, id int64) (*models.Tour, error) {
	tour, err := s.tours.GetTour(ctx, id)
	if err != nil {
		return nil, storeError("load tour", "Tour not found", err)
	}
	return tour, nil
}

func (s *TourService) ListTours(ctx context.Context, filter models.TourFilter) ([]models.Tour, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ValidationError("unknown tour status: " + string(filter.Status))
	}
	tours, err := s.tours.ListTours(ctx, filter)
	if err != nil {
		return nil, PersistenceError("list tours", err)
	}
	return tours, nil
}

// UpdateTourDetails rewrites the staff-editable fields. Status and guide
// assignment only change through AssignGuide.
func (s *TourService) UpdateTourDetails(ctx context.Context, id int64, in TourInput) (*models.Tour, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tour, err := s.tours.GetTour(ctx, id)
	if err != nil {
		return nil, storeError("load tour", "Tour not found", err)
	}
	if in.ClientID != tour.ClientID {
		if err := s.requireClient(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}

	in.apply(tour)

	updated, err := s.tours.UpdateTourDetails(ctx, tour)
	if err != nil {
		return nil, storeError("update tour", "Tour not found", err)
	}
	return updated, nil
}

func (s *TourService) DeleteTour(ctx context.Context, id int64) error {
	if err := s.tours.DeleteTour(ctx, id); err != nil {
		return storeError("delete tour", "Tour not found", err)
	}
	s.log.Info("Tour deleted", zap.Int64(logger.FieldTourID, id))
	return nil
}
