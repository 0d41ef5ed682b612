package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type toolService struct {
	toolRepo repository.ToolRepository
}

func NewToolService(toolRepo repository.ToolRepository) ToolService {
	return &toolService{toolRepo: toolRepo}
}

func (s *toolService) AddTool(ctx context.Context, tool *domain.Tool) error {
	tool.Name = strings.TrimSpace(tool.Name)
	if tool.Name == "" {
		return errors.New("tool name is required")
	}
	if tool.DailyPriceCents < 0 || tool.DepositCents < 0 {
		return errors.New("price and deposit must not be negative")
	}
	return s.toolRepo.Create(ctx, tool)
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, []domain.ToolAvailability, error) {
	tool, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrToolNotFound
		}
		return nil, nil, err
	}
	availability, err := s.toolRepo.ListAvailability(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return tool, availability, nil
}

func (s *toolService) ListMyTools(ctx context.Context, ownerID int32) ([]domain.Tool, error) {
	return s.toolRepo.ListByOwner(ctx, ownerID)
}

func (s *toolService) SearchTools(ctx context.Context, query, category, metro string) ([]domain.Tool, error) {
	return s.toolRepo.Search(ctx, query, category, metro)
}
