package service

import (
	"context"

	"github.com/retailhub/pos-api/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) SearchByBarcode(ctx context.Context, barcode int64) (*domain.Product, error) {
	p, err := s.repo.FindByBarcode(ctx, s.db, barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		s.log.Debug("barcode not found", zap.Int64("barcode", barcode))
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Product, error) {
	if req.Skip < 0 {
		return nil, domain.ErrInvalidSkip
	}
	if req.Limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	// limit 0 is a valid request for an empty page
	if req.Limit == 0 {
		return []domain.Product{}, nil
	}

	items, err := s.repo.List(ctx, s.db, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}
	return items, nil
}
