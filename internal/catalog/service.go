package catalog

import (
	"context"

	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

// Service exposes the read-only catalog listings.
type Service interface {
	ListFish(ctx context.Context) ([]FishDTO, error)
	ListSeasons(ctx context.Context) ([]SeasonDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListFish(ctx context.Context) ([]FishDTO, error) {
	rows, err := s.repo.ListFish(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fish")
	}
	return FishFromModels(rows), nil
}

func (s *service) ListSeasons(ctx context.Context) ([]SeasonDTO, error) {
	rows, err := s.repo.ListSeasons(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seasons")
	}
	return SeasonsFromModels(rows), nil
}
