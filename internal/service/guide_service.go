package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tour-manager/internal/models"
	"tour-manager/pkg/logger"
)

// GuideInput holds the staff-editable fields of a guide.
type GuideInput struct {
	Name        string
	Email       string
	Phone       *string
	TgAlias     *string
	ContactInfo *string
	IsActive    *bool
}

func (in GuideInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return ValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func (in GuideInput) apply(g *models.Guide) {
	g.Name = strings.TrimSpace(in.Name)
	g.Email = strings.TrimSpace(in.Email)
	g.Phone = in.Phone
	g.TgAlias = in.TgAlias
	g.ContactInfo = in.ContactInfo
	if in.IsActive != nil {
		g.IsActive = *in.IsActive
	}
}

type GuideService struct {
	guides GuideStore
	log    *zap.Logger
}

func NewGuideService(guides GuideStore, log *zap.Logger) *GuideService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GuideService{guides: guides, log: log.Named("guides")}
}

// CreateGuide stores a new guide. Guides are active unless in.IsActive says
// otherwise; counters start at zero.
func (s *GuideService) CreateGuide(ctx context.Context, in GuideInput) (*models.Guide, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	g := &models.Guide{IsActive: true}
	in.apply(g)

	created, err := s.guides.CreateGuide(ctx, g)
	if err != nil {
		return nil, storeError("create guide", "Guide not found", err)
	}
	s.log.Info("Guide created", zap.Int64(logger.FieldGuideID, created.ID))
	return created, nil
}

func (s *GuideService) GetGuide(ctx context.Context, id int64) (*models.Guide, error) {
	g, err := s.guides.GetGuide(ctx, id)
	if err != nil {
		return nil, storeError("load guide", "Guide not found", err)
	}
	return g, nil
}

func (s *GuideService) ListGuides(ctx context.Context, filter models.GuideFilter) ([]models.Guide, error) {
	guides, err := s.guides.ListGuides(ctx, filter)
	if err != nil {
		return nil, PersistenceError("list guides", err)
	}
	return guides, nil
}

func (s *GuideService) UpdateGuide(ctx context.Context, id int64, in GuideInput) (*models.Guide, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	g, err := s.guides.GetGuide(ctx, id)
	if err != nil {
		return nil, storeError("load guide", "Guide not found", err)
	}
	in.apply(g)

	updated, err := s.guides.UpdateGuide(ctx, g)
	if err != nil {
		return nil, storeError("update guide", "Guide not found", err)
	}
	return updated, nil
}

func (s *GuideService) DeleteGuide(ctx context.Context, id int64) error {
	if err := s.guides.DeleteGuide(ctx, id); err != nil {
		return storeError("delete guide", "Guide not found", err)
	}
	s.log.Info("Guide deleted", zap.Int64(logger.FieldGuideID, id))
	return nil
}
