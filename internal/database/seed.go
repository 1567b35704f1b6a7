package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tour-manager/internal/models"
)

func strPtr(s string) *string {
	return &s
}

var sampleClients = []models.Client{
	{Name: "Московский Музей", ContactInfo: strPtr("info@moscowmuseum.ru, +7 495 123-4567"), TgAlias: strPtr("@moscow_museum")},
	{Name: `Туристическая Компания "Север"`, ContactInfo: strPtr("booking@sever-tours.com, +7 812 987-6543"), TgAlias: strPtr("@severtours")},
	{Name: `Отель "Метрополь"`, ContactInfo: strPtr("concierge@metropol.ru, +7 495 501-7800"), TgAlias: strPtr("@metropol_hotel")},
}

var sampleGuides = []models.Guide{
	{Name: "Анна Петрова", Email: "anna.petrova@guides.ru", Phone: strPtr("+7 925 123-4567"), TgAlias: strPtr("@anna_guide"), IsActive: true},
	{Name: "Михаил Сидоров", Email: "mikhail.sidorov@guides.ru", Phone: strPtr("+7 926 234-5678"), TgAlias: strPtr("@mikhail_guide"), IsActive: true},
	{Name: "Елена Васильева", Email: "elena.vasileva@guides.ru", Phone: strPtr("+7 927 345-6789"), TgAlias: strPtr("@elena_guide"), IsActive: true},
}

// Seed inserts sample clients and guides into empty tables. Tables that
// already hold rows are left untouched.
func (db *DB) Seed(ctx context.Context) error {
	n, err := db.CountClients(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, c := range sampleClients {
			c := c
			if _, err := db.CreateClient(ctx, &c); err != nil {
				return fmt.Errorf("failed to seed clients: %w", err)
			}
		}
		db.log.Info("Seeded sample clients", zap.Int("count", len(sampleClients)))
	}

	n, err = db.CountGuides(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, g := range sampleGuides {
			g := g
			if _, err := db.CreateGuide(ctx, &g); err != nil {
				return fmt.Errorf("failed to seed guides: %w", err)
			}
		}
		db.log.Info("Seeded sample guides", zap.Int("count", len(sampleGuides)))
	}

	return nil
}
