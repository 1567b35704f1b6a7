package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tour-manager/internal/models"
	"tour-manager/pkg/logger"
)

type ClientService struct {
	clients ClientStore
	log     *zap.Logger
}

func NewClientService(clients ClientStore, log *zap.Logger) *ClientService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClientService{clients: clients, log: log.Named("clients")}
}

func (s *ClientService) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, ValidationError("missing required fields: name")
	}
	c.ID = 0

	created, err := s.clients.CreateClient(ctx, &c)
	if err != nil {
		return nil, storeError("create client", "Client not found", err)
	}
	s.log.Info("Client created", zap.Int64(logger.FieldClientID, created.ID))
	return created, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	c, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return nil, storeError("load client", "Client not found", err)
	}
	return c, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, PersistenceError("list clients", err)
	}
	return clients, nil
}

// SetBlacklist is the only mutation a client allows after creation.
func (s *ClientService) SetBlacklist(ctx context.Context, id int64, blacklisted bool) (*models.Client, error) {
	c, err := s.clients.SetClientBlacklist(ctx, id, blacklisted)
	if err != nil {
		return nil, storeError("update client", "Client not found", err)
	}
	s.log.Info("Client blacklist updated",
		zap.Int64(logger.FieldClientID, id),
		zap.Bool("black_list", blacklisted),
	)
	return c, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		return storeError("delete client", "Client not found", err)
	}
	s.log.Info("Client deleted", zap.Int64(logger.FieldClientID, id))
	return nil
}
