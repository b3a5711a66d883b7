package repository

import (
	"context"
	"errors"

	"github.com/retailhub/pos-api/internal/purchase/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateTransaction(ctx context.Context, db *gorm.DB, trx *domain.Transaction) error {
	return db.WithContext(ctx).Omit("Details").Create(trx).Error
}

func (r *repo) CreateDetails(ctx context.Context, db *gorm.DB, details []domain.TransactionDetail) error {
	if len(details) == 0 {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Create(&details).Error
}

func (r *repo) FindTransaction(ctx context.Context, db *gorm.DB, id int64) (*domain.Transaction, error) {
	var trx domain.Transaction
	err := db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("detail_id ASC")
		}).
		First(&trx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trx, nil
}
